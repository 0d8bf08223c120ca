package atcoder

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/atcoder-cli/internal/client"
	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/internal/session"
	"github.com/rohmanhakim/atcoder-cli/pkg/urlutil"
)

// params is the configuration every fetcher shares with the facade.
type params struct {
	client       client.Client
	session      *session.Session
	atcoderURL   string
	languages    []Language
	metadataSink metadata.MetadataSink
}

func (p params) options() client.Options {
	return client.Options{Session: p.session}
}

// getDocument issues one GET and parses the body as HTML.
func (p params) getDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	res, err := p.client.Get(ctx, rawURL, p.options())
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		contentErr := &ContentError{
			Message: err.Error(),
			Cause:   ErrCauseUnparsableHTML,
			URL:     rawURL,
		}
		p.metadataSink.RecordError(
			time.Now(),
			"atcoder",
			"getDocument",
			mapErrorToMetadataCause(contentErr),
			contentErr.Error(),
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, rawURL)},
		)
		return nil, contentErr
	}
	return doc, nil
}

// pageMemo holds the single parse of one page. The first caller runs the
// fetch; concurrent callers wait for it. A failed fetch is memoized too,
// unless it failed because the caller's context was done.
type pageMemo struct {
	mu   sync.Mutex
	done bool
	doc  *goquery.Document
	err  error
}

func (m *pageMemo) load(ctx context.Context, fetch func(context.Context) (*goquery.Document, error)) (*goquery.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return m.doc, m.err
	}
	doc, err := fetch(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	m.doc, m.err, m.done = doc, err, true
	return m.doc, m.err
}

// outerHTML concatenates the serialized form of every node in sel.
func outerHTML(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Each(func(_ int, s *goquery.Selection) {
		h, err := goquery.OuterHtml(s)
		if err == nil {
			b.WriteString(h)
		}
	})
	return b.String()
}

// hrefID returns the last path segment of the first anchor under sel.
func hrefID(sel *goquery.Selection) string {
	href, _ := sel.Find("a").First().Attr("href")
	return urlutil.LastPathSegment(href)
}
