package client

import (
	"context"
	"net/url"
)

/*
Client is the capability every link of the request chain implements.

The chain is assembled once, innermost first:

	HttpClient -> ValidatingClient -> CachedClient

so cached entries are always validated, successful GET responses.
*/
type Client interface {
	Get(ctx context.Context, rawURL string, opts Options) (Response, error)
	PostForm(ctx context.Context, rawURL string, form url.Values, opts Options) (Response, error)
}
