package client

import (
	"context"
	"net/url"
	"time"

	"github.com/rohmanhakim/atcoder-cli/internal/cache"
	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/pkg/urlutil"
)

/*
CachedClient memoizes GET responses keyed by the URL fingerprint.

- Only textual bodies are stored; binary bodies are returned uncached
- A failed cache write is recorded and never fails the request
- PostForm is never cached
*/
type CachedClient struct {
	next         Client
	cache        cache.Cache[Response]
	metadataSink metadata.MetadataSink
}

func NewCachedClient(next Client, store cache.Cache[Response], metadataSink metadata.MetadataSink) *CachedClient {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &CachedClient{
		next:         next,
		cache:        store,
		metadataSink: metadataSink,
	}
}

func (c *CachedClient) Get(ctx context.Context, rawURL string, opts Options) (Response, error) {
	key := urlutil.Fingerprint(rawURL)
	if res, ok := c.cache.Get(key); ok {
		c.metadataSink.RecordCache(metadata.CacheHit, key, []metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, rawURL),
		})
		return res, nil
	}
	c.metadataSink.RecordCache(metadata.CacheMiss, key, nil)

	res, err := c.next.Get(ctx, rawURL, opts)
	if err != nil {
		return Response{}, err
	}

	if !res.IsText() {
		c.metadataSink.RecordCache(metadata.CacheSkip, key, []metadata.Attribute{
			metadata.NewAttr(metadata.AttrContentType, res.ContentType),
		})
		return res, nil
	}
	if _, err := c.cache.Put(key, res); err != nil {
		c.metadataSink.RecordError(
			time.Now(),
			"client",
			"CachedClient.Get",
			metadata.CauseStorageFailure,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, rawURL),
				metadata.NewAttr(metadata.AttrCacheKey, key),
			},
		)
		return res, nil
	}
	c.metadataSink.RecordCache(metadata.CacheStore, key, nil)
	return res, nil
}

func (c *CachedClient) PostForm(ctx context.Context, rawURL string, form url.Values, opts Options) (Response, error) {
	return c.next.PostForm(ctx, rawURL, form, opts)
}

// ClearCache drops every stored response.
func (c *CachedClient) ClearCache() error {
	if err := c.cache.Clear(); err != nil {
		c.metadataSink.RecordError(
			time.Now(),
			"client",
			"CachedClient.ClearCache",
			metadata.CauseStorageFailure,
			err.Error(),
			nil,
		)
		return err
	}
	c.metadataSink.RecordCache(metadata.CacheClear, "", nil)
	return nil
}
