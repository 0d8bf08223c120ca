package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
)

const maxRedirects = 10

/*
HttpClient is the transport link of the chain.

- Every request replays the cookie jar of Options.Session
- GET redirects are followed; a redirect answering a POST is returned as is,
  so a login POST is judged by its own (normally empty) body
- Responses of every status are returned verbatim
- Only failures to reach the server are errors

All requests share one connection pool. The per-request resty client only
binds the jar and is not retained.
*/
type HttpClient struct {
	metadataSink metadata.MetadataSink
	userAgent    string
	timeout      time.Duration
	transport    *http.Transport
}

func NewHttpClient(
	metadataSink metadata.MetadataSink,
	userAgent string,
	timeout time.Duration,
) *HttpClient {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &HttpClient{
		metadataSink: metadataSink,
		userAgent:    userAgent,
		timeout:      timeout,
		transport:    http.DefaultTransport.(*http.Transport).Clone(),
	}
}

func (h *HttpClient) Get(ctx context.Context, rawURL string, opts Options) (Response, error) {
	return h.do(ctx, http.MethodGet, rawURL, nil, opts)
}

func (h *HttpClient) PostForm(ctx context.Context, rawURL string, form url.Values, opts Options) (Response, error) {
	return h.do(ctx, http.MethodPost, rawURL, form, opts)
}

func (h *HttpClient) do(
	ctx context.Context,
	method string,
	rawURL string,
	form url.Values,
	opts Options,
) (Response, error) {
	callerMethod := "HttpClient." + method
	startTime := time.Now()

	req := h.restyFor(opts).R().
		SetContext(ctx).
		SetHeaders(opts.Headers)
	if form != nil {
		req.SetFormDataFromValues(form)
	}

	res, err := req.Execute(method, rawURL)
	if err != nil {
		transportErr := &TransportError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
			URL:       rawURL,
			Err:       err,
		}
		h.metadataSink.RecordError(
			time.Now(),
			"client",
			callerMethod,
			mapClientErrorToMetadataCause(transportErr),
			transportErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, rawURL),
				metadata.NewAttr(metadata.AttrMethod, method),
			},
		)
		return Response{}, transportErr
	}

	response := Response{
		StatusCode:  res.StatusCode(),
		ContentType: res.Header().Get("Content-Type"),
		Body:        res.Body(),
	}

	h.metadataSink.RecordFetch(metadata.FetchEvent{
		Method:      method,
		URL:         rawURL,
		HTTPStatus:  response.StatusCode,
		Duration:    time.Since(startTime),
		ContentType: response.ContentType,
	})

	return response, nil
}

// restyFor binds the session's jar to a resty client over the shared transport.
func (h *HttpClient) restyFor(opts Options) *resty.Client {
	var jar http.CookieJar
	if opts.Session != nil {
		jar = opts.Session.Jar()
	}
	c := resty.NewWithClient(&http.Client{
		Jar:       jar,
		Transport: h.transport,
		Timeout:   h.timeout,
	})
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(keepPostRedirect))
	if h.userAgent != "" {
		c.SetHeader("User-Agent", h.userAgent)
	}
	return c
}

func keepPostRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > 0 && via[0].Method == http.MethodPost {
		return http.ErrUseLastResponse
	}
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}
