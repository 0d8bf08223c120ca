package atcoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/atcoder-cli/internal/cache"
	"github.com/rohmanhakim/atcoder-cli/internal/client"
	"github.com/rohmanhakim/atcoder-cli/internal/config"
	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/internal/session"
	"github.com/rohmanhakim/atcoder-cli/pkg/urlutil"
)

/*
AtCoder is the entry point of the library.

Responsibilities
- Compose the client chain once: transport, then validation, then caching
- Own the session every request replays
- Log in and report login state
- List contests and hand out Contest fetchers

Cache tiers follow the configuration in this order: memory, LevelDB,
filesystem. With no tier the validated transport is used uncached.
*/
type AtCoder struct {
	params      params
	problemsURL string
	uncached    client.Client
	cached      *client.CachedClient
	closers     []func() error
}

type Option func(*options)

type options struct {
	rawClient    client.Client
	metadataSink metadata.MetadataSink
}

// WithRawClient replaces the HTTP transport. Validation and caching are
// still layered on top of it.
func WithRawClient(c client.Client) Option {
	return func(o *options) {
		o.rawClient = c
	}
}

func WithMetadataSink(sink metadata.MetadataSink) Option {
	return func(o *options) {
		o.metadataSink = sink
	}
}

func New(sess *session.Session, cfg config.Config, opts ...Option) (*AtCoder, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metadataSink == nil {
		o.metadataSink = &metadata.NoopSink{}
	}
	if o.rawClient == nil {
		o.rawClient = client.NewHttpClient(o.metadataSink, cfg.UserAgent(), cfg.Timeout())
	}
	if sess == nil {
		sess = session.New()
	}

	languages := make([]Language, 0, len(cfg.Languages()))
	for _, tag := range cfg.Languages() {
		lang, err := ParseLanguage(tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
		languages = append(languages, lang)
	}

	a := &AtCoder{problemsURL: cfg.ProblemsURL()}
	validated := client.NewValidatingClient(o.rawClient, o.metadataSink)
	a.uncached = validated

	var tiers []cache.Cache[client.Response]
	if entries := cfg.MaxMemoryEntries(); entries != nil {
		tiers = append(tiers, cache.NewMemoryCache[client.Response](*entries))
	}
	if dir := cfg.LevelDBDirectory(); dir != "" {
		db, err := cache.OpenLevelDBCache[client.Response](dir)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, db)
		a.closers = append(a.closers, db.Close)
	}
	if dir := cfg.CacheDirectory(); dir != "" {
		tiers = append(tiers, cache.NewFilesystemCache[client.Response](dir))
	}

	var c client.Client = validated
	if len(tiers) != 0 {
		a.cached = client.NewCachedClient(validated, cache.NewCompositeCache(tiers...), o.metadataSink)
		c = a.cached
	}

	a.params = params{
		client:       c,
		session:      sess,
		atcoderURL:   strings.TrimRight(cfg.AtCoderURL(), "/"),
		languages:    languages,
		metadataSink: o.metadataSink,
	}
	return a, nil
}

func (a *AtCoder) Session() *session.Session {
	return a.params.session
}

// Login submits the login form with the page's CSRF token. The site answers
// a successful login with an empty body; anything else is a *LoginError.
// On success every cached page is dropped, since it was rendered logged out.
func (a *AtCoder) Login(ctx context.Context, username string, password string) error {
	loginURL := a.params.atcoderURL + "/login"

	doc, err := a.params.getDocument(ctx, loginURL)
	if err != nil {
		return err
	}
	token, _ := doc.Find("input[name=csrf_token]").First().Attr("value")

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("csrf_token", token)
	res, err := a.params.client.PostForm(ctx, loginURL, form, a.params.options())
	if err != nil {
		return err
	}
	if len(res.Body) != 0 {
		loginErr := &LoginError{Body: res.Text()}
		a.params.metadataSink.RecordError(
			time.Now(),
			"atcoder",
			"AtCoder.Login",
			mapErrorToMetadataCause(loginErr),
			"login rejected",
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, loginURL)},
		)
		return loginErr
	}

	if a.cached != nil {
		return a.cached.ClearCache()
	}
	return nil
}

// IsLoggedIn fetches the site root around the cache, so a page cached
// before login cannot answer.
func (a *AtCoder) IsLoggedIn(ctx context.Context) (bool, error) {
	res, err := a.uncached.Get(ctx, a.params.atcoderURL, a.params.options())
	if err != nil {
		return false, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return false, &ContentError{Message: err.Error(), Cause: ErrCauseUnparsableHTML, URL: a.params.atcoderURL}
	}
	return doc.Find(`a[href="javascript:form_logout.submit()"]`).Length() != 0, nil
}

type contestEntry struct {
	ID string `json:"id"`
}

// Contests lists every contest id known to the problems index. The request
// carries a fresh session; the index is public.
func (a *AtCoder) Contests(ctx context.Context) ([]string, error) {
	rawURL := urlutil.Join(a.problemsURL, "resources", "contests.json")
	res, err := a.params.client.Get(ctx, rawURL, client.Options{Session: session.New()})
	if err != nil {
		return nil, err
	}

	var entries []contestEntry
	if err := json.Unmarshal(res.Body, &entries); err != nil {
		contentErr := &ContentError{Message: err.Error(), Cause: ErrCauseUnparsableJSON, URL: rawURL}
		a.params.metadataSink.RecordError(
			time.Now(),
			"atcoder",
			"AtCoder.Contests",
			mapErrorToMetadataCause(contentErr),
			contentErr.Error(),
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, rawURL)},
		)
		return nil, contentErr
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (a *AtCoder) Contest(id string) *Contest {
	return newContest(id, a.params)
}

// ClearCache drops every cached page. It is a no-op without cache tiers.
func (a *AtCoder) ClearCache() error {
	if a.cached == nil {
		return nil
	}
	return a.cached.ClearCache()
}

// Close releases cache resources.
func (a *AtCoder) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
