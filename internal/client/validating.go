package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
)

// ValidatingClient turns any status >= 400 into a *RequestFailedError
// carrying the full response. Other responses pass through unchanged.
type ValidatingClient struct {
	next         Client
	metadataSink metadata.MetadataSink
}

func NewValidatingClient(next Client, metadataSink metadata.MetadataSink) *ValidatingClient {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &ValidatingClient{
		next:         next,
		metadataSink: metadataSink,
	}
}

func (v *ValidatingClient) Get(ctx context.Context, rawURL string, opts Options) (Response, error) {
	res, err := v.next.Get(ctx, rawURL, opts)
	if err != nil {
		return Response{}, err
	}
	return v.validate(http.MethodGet, rawURL, res)
}

func (v *ValidatingClient) PostForm(ctx context.Context, rawURL string, form url.Values, opts Options) (Response, error) {
	res, err := v.next.PostForm(ctx, rawURL, form, opts)
	if err != nil {
		return Response{}, err
	}
	return v.validate(http.MethodPost, rawURL, res)
}

func (v *ValidatingClient) validate(method string, rawURL string, res Response) (Response, error) {
	if res.StatusCode < 400 {
		return res, nil
	}
	err := &RequestFailedError{
		Method:   method,
		URL:      rawURL,
		Response: res,
	}
	v.metadataSink.RecordError(
		time.Now(),
		"client",
		"ValidatingClient."+method,
		mapClientErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, rawURL),
			metadata.NewAttr(metadata.AttrMethod, method),
		},
	)
	return Response{}, err
}
