package cache

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/vmihailenco/msgpack/v5"
)

// LevelDBCache is a durable Cache backed by a goleveldb database.
// Values are msgpack-encoded; entries that fail to decode are absent.
type LevelDBCache[V any] struct {
	db *leveldb.DB
}

// OpenLevelDBCache opens (or creates) the database at dir.
func OpenLevelDBCache[V any](dir string) (*LevelDBCache[V], error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseOpenFailure,
		}
	}
	return &LevelDBCache[V]{db: db}, nil
}

func (c *LevelDBCache[V]) Put(key string, value V) (V, error) {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return value, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodeFailure,
			Key:       key,
		}
	}
	if err := c.db.Put([]byte(key), data, nil); err != nil {
		return value, &CacheError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	return value, nil
}

func (c *LevelDBCache[V]) Get(key string) (V, bool) {
	var zero V
	data, err := c.db.Get([]byte(key), nil)
	if err != nil {
		return zero, false
	}
	var value V
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return zero, false
	}
	return value, true
}

func (c *LevelDBCache[V]) Clear() error {
	iter := c.db.NewIterator(nil, nil)
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return &CacheError{Message: err.Error(), Cause: ErrCauseClearFailure}
	}
	if err := c.db.Write(batch, nil); err != nil {
		return &CacheError{Message: err.Error(), Cause: ErrCauseClearFailure}
	}
	return nil
}

func (c *LevelDBCache[V]) Close() error {
	return c.db.Close()
}
