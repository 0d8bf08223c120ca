package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/atcoder-cli/pkg/fileutil"
	"github.com/rohmanhakim/atcoder-cli/pkg/hashutil"
)

// maxFileNameKey is the longest key stored under its own name.
const maxFileNameKey = 200

// FilesystemCache stores one JSON file per key under dir.
// The directory is created on first write. Keys that are too long or not
// usable as a file name are stored under a blake3 digest of the key.
type FilesystemCache[V any] struct {
	dir string
}

func NewFilesystemCache[V any](dir string) *FilesystemCache[V] {
	return &FilesystemCache[V]{dir: dir}
}

func (c *FilesystemCache[V]) Dir() string {
	return c.dir
}

func (c *FilesystemCache[V]) Put(key string, value V) (V, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return value, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodeFailure,
			Key:       key,
		}
	}
	if ferr := fileutil.EnsureDir(c.dir); ferr != nil {
		return value, &CacheError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	path, err := c.pathFor(key)
	if err != nil {
		return value, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return value, &CacheError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	return value, nil
}

func (c *FilesystemCache[V]) Get(key string) (V, bool) {
	var zero V
	path, err := c.pathFor(key)
	if err != nil {
		return zero, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, false
	}
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, false
	}
	return value, true
}

// Clear deletes every file in the directory; the directory itself stays.
func (c *FilesystemCache[V]) Clear() error {
	if ferr := fileutil.RemoveDirContents(c.dir); ferr != nil {
		return &CacheError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCauseClearFailure,
		}
	}
	return nil
}

func (c *FilesystemCache[V]) pathFor(key string) (string, error) {
	name := key
	if len(key) > maxFileNameKey || key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		hashed, err := hashutil.NameForKey(key, hashutil.HashAlgoBLAKE3)
		if err != nil {
			return "", err
		}
		name = hashed
	}
	return filepath.Join(c.dir, name), nil
}
