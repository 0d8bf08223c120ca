package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCache wraps a MemoryCache and counts calls.
type recordingCache struct {
	*MemoryCache[string]
	puts    int
	gets    int
	putErr  error
	clears  int
	clearErr error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{MemoryCache: NewMemoryCache[string](0)}
}

func (r *recordingCache) Put(key string, value string) (string, error) {
	r.puts++
	if r.putErr != nil {
		return value, r.putErr
	}
	return r.MemoryCache.Put(key, value)
}

func (r *recordingCache) Get(key string) (string, bool) {
	r.gets++
	return r.MemoryCache.Get(key)
}

func (r *recordingCache) Clear() error {
	r.clears++
	if r.clearErr != nil {
		return r.clearErr
	}
	return r.MemoryCache.Clear()
}

func TestCompositeCache_GetReturnsFirstHitInOrder(t *testing.T) {
	first, second := newRecordingCache(), newRecordingCache()
	_, _ = first.MemoryCache.Put("k", "from-first")
	_, _ = second.MemoryCache.Put("k", "from-second")
	_, _ = second.MemoryCache.Put("only-second", "second")

	c := NewCompositeCache[string](first, second)

	v, found := c.Get("k")
	assert.True(t, found)
	assert.Equal(t, "from-first", v)
	assert.Equal(t, 0, second.gets)

	v, found = c.Get("only-second")
	assert.True(t, found)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, second.gets)

	_, found = c.Get("nowhere")
	assert.False(t, found)
}

func TestCompositeCache_PutFansOutToEveryTier(t *testing.T) {
	first, second := newRecordingCache(), newRecordingCache()
	_, _ = first.MemoryCache.Put("k", "old")
	c := NewCompositeCache[string](first, second)

	v, err := c.Put("k", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	assert.Equal(t, 1, first.puts)
	assert.Equal(t, 1, second.puts)
	got, _ := first.MemoryCache.Get("k")
	assert.Equal(t, "new", got)
	got, _ = second.MemoryCache.Get("k")
	assert.Equal(t, "new", got)
}

func TestCompositeCache_PutTriesAllTiersOnError(t *testing.T) {
	failing, healthy := newRecordingCache(), newRecordingCache()
	failing.putErr = errors.New("disk gone")
	c := NewCompositeCache[string](failing, healthy)

	_, err := c.Put("k", "v")
	assert.EqualError(t, err, "disk gone")
	assert.Equal(t, 1, healthy.puts)
	got, found := healthy.MemoryCache.Get("k")
	assert.True(t, found)
	assert.Equal(t, "v", got)
}

func TestCompositeCache_ClearReachesEveryTier(t *testing.T) {
	first, second := newRecordingCache(), newRecordingCache()
	c := NewCompositeCache[string](first, second)
	_, _ = c.Put("k", "v")

	require.NoError(t, c.Clear())

	assert.Equal(t, 1, first.clears)
	assert.Equal(t, 1, second.clears)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCompositeCache_MixedTiers(t *testing.T) {
	mem := NewMemoryCache[entry](1)
	fs := NewFilesystemCache[entry](t.TempDir())
	c := NewCompositeCache[entry](mem, fs)

	_, err := c.Put("a", entry{Body: "a"})
	require.NoError(t, err)
	_, err = c.Put("b", entry{Body: "b"})
	require.NoError(t, err)

	// memory tier holds one key; the filesystem tier still serves the other
	for _, k := range []string{"a", "b"} {
		v, found := c.Get(k)
		assert.True(t, found)
		assert.Equal(t, k, v.Body)
	}
}

func TestCompositeCache_Empty(t *testing.T) {
	c := NewCompositeCache[string]()
	_, found := c.Get("k")
	assert.False(t, found)
	_, err := c.Put("k", "v")
	assert.NoError(t, err)
	assert.NoError(t, c.Clear())
}
