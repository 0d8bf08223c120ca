package atcoder

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rohmanhakim/atcoder-cli/internal/client"
	"github.com/rohmanhakim/atcoder-cli/internal/client/clienttest"
	"github.com/rohmanhakim/atcoder-cli/internal/config"
	"github.com/rohmanhakim/atcoder-cli/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://tmp"

// newTestAtCoder builds a facade over mock with the default in-memory cache.
func newTestAtCoder(t *testing.T, mock client.Client, languages ...string) *AtCoder {
	t.Helper()
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	cfg, err := config.WithDefault().
		WithAtCoderURL(testBaseURL).
		WithLanguages(languages).
		Build()
	require.NoError(t, err)

	a, err := New(session.New(), cfg, WithRawClient(mock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestLogin(t *testing.T) {
	mock := clienttest.New(func(call clienttest.Call) (client.Response, error) {
		if call.Method == "GET" {
			return client.Response{
				StatusCode:  200,
				ContentType: "text/html",
				Body:        []byte("<input type='hidden' name='csrf_token' value='tmp'>"),
			}, nil
		}
		return client.Response{StatusCode: 200, ContentType: "text/html"}, nil
	})
	a := newTestAtCoder(t, mock)

	err := a.Login(context.Background(), "foo", "bar")
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "GET", calls[0].Method)
	assert.Equal(t, "http://tmp/login", calls[0].URL)
	assert.Same(t, a.Session(), calls[0].Opts.Session)

	assert.Equal(t, "POST", calls[1].Method)
	assert.Equal(t, "http://tmp/login", calls[1].URL)
	assert.Equal(t, url.Values{
		"username":   {"foo"},
		"password":   {"bar"},
		"csrf_token": {"tmp"},
	}, calls[1].Form)
	assert.Same(t, a.Session(), calls[1].Opts.Session)
}

func TestLogin_ClearsCache(t *testing.T) {
	mock := clienttest.New(func(call clienttest.Call) (client.Response, error) {
		if call.Method == "POST" {
			return client.Response{StatusCode: 200}, nil
		}
		return client.Response{StatusCode: 200, ContentType: "text/html", Body: []byte("<input name='csrf_token' value='tmp'>")}, nil
	})
	a := newTestAtCoder(t, mock)
	ctx := context.Background()

	_, err := a.params.client.Get(ctx, "http://tmp/contests/c1/tasks?lang=en", a.params.options())
	require.NoError(t, err)
	require.NoError(t, a.Login(ctx, "foo", "bar"))
	_, err = a.params.client.Get(ctx, "http://tmp/contests/c1/tasks?lang=en", a.params.options())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET http://tmp/contests/c1/tasks?lang=en",
		"GET http://tmp/login",
		"POST http://tmp/login",
		"GET http://tmp/contests/c1/tasks?lang=en",
	}, mock.URLs())
}

func TestLogin_Failure(t *testing.T) {
	mock := clienttest.New(func(call clienttest.Call) (client.Response, error) {
		if call.Method == "GET" {
			return client.Response{StatusCode: 200, ContentType: "text/html", Body: []byte("<input name='csrf_token' value='tmp'>")}, nil
		}
		return client.Response{StatusCode: 200, ContentType: "text/html", Body: []byte("invalid password")}, nil
	})
	a := newTestAtCoder(t, mock)

	err := a.Login(context.Background(), "foo", "bar")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoginFailed))

	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "invalid password", loginErr.Body)
	assert.Contains(t, err.Error(), "invalid password")
}

func TestLogin_HTTPError(t *testing.T) {
	mock := clienttest.New(func(call clienttest.Call) (client.Response, error) {
		return client.Response{StatusCode: 503, Body: []byte("down")}, nil
	})
	a := newTestAtCoder(t, mock)

	err := a.Login(context.Background(), "foo", "bar")
	assert.ErrorIs(t, err, client.ErrRequestFailed)
	assert.Len(t, mock.Calls(), 1)
}

func TestIsLoggedIn(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"logout link present", `<a href="javascript:form_logout.submit()">Sign Out</a>`, true},
		{"logout link absent", `<a href="/login">Sign In</a>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := clienttest.Static(tt.body)
			a := newTestAtCoder(t, mock)

			got, err := a.IsLoggedIn(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"GET http://tmp"}, mock.URLs())
		})
	}
}

func TestIsLoggedIn_BypassesCache(t *testing.T) {
	mock := clienttest.Static(`<a href="javascript:form_logout.submit()"></a>`)
	a := newTestAtCoder(t, mock)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := a.IsLoggedIn(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, mock.Calls(), 2)
}

func TestContests(t *testing.T) {
	mock := clienttest.Routes(map[string]string{
		config.DefaultProblemsURL + "/resources/contests.json": `[{"id":"abc001","title":"x"},{"id":"arc001"}]`,
	})
	a := newTestAtCoder(t, mock)

	ids, err := a.Contests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc001", "arc001"}, ids)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Opts.Session)
	assert.NotSame(t, a.Session(), calls[0].Opts.Session)
}

func TestContests_InvalidJSON(t *testing.T) {
	mock := clienttest.Static("<html></html>")
	a := newTestAtCoder(t, mock)

	_, err := a.Contests(context.Background())
	var contentErr *ContentError
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, ErrCauseUnparsableJSON, contentErr.Cause)
}

func TestNew_NilSession(t *testing.T) {
	a, err := New(nil, config.Config{}, WithRawClient(clienttest.Static("")))
	require.NoError(t, err)
	assert.NotNil(t, a.Session())
	assert.Nil(t, a.cached)
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("ja")
	require.NoError(t, err)
	assert.Equal(t, Japanese, lang)

	_, err = ParseLanguage("fr")
	assert.Error(t, err)
}

func TestNew_WithoutCacheTiers(t *testing.T) {
	cfg, err := config.WithDefault().WithAtCoderURL(testBaseURL).WithoutMemoryCache().Build()
	require.NoError(t, err)
	mock := clienttest.Static("<a class='contest-title'>Title</a>")

	a, err := New(session.New(), cfg, WithRawClient(mock))
	require.NoError(t, err)
	ctx := context.Background()

	assert.Nil(t, a.cached)
	for i := 0; i < 2; i++ {
		_, err := a.params.client.Get(ctx, "http://tmp/", a.params.options())
		require.NoError(t, err)
	}
	assert.Len(t, mock.Calls(), 2)
	assert.NoError(t, a.ClearCache())
}

func TestNew_FilesystemTier(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.WithDefault().
		WithAtCoderURL(testBaseURL).
		WithoutMemoryCache().
		WithCacheDirectory(dir).
		Build()
	require.NoError(t, err)
	ctx := context.Background()

	first := clienttest.Static("<a class='contest-title'>Title</a>")
	a, err := New(session.New(), cfg, WithRawClient(first))
	require.NoError(t, err)
	name, err := a.Contest("c1").Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Title", name)

	second := clienttest.Static("<a class='contest-title'>Other</a>")
	b, err := New(session.New(), cfg, WithRawClient(second))
	require.NoError(t, err)
	name, err = b.Contest("c1").Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Title", name)
	assert.Empty(t, second.Calls())
}

func TestNew_LevelDBTier(t *testing.T) {
	cfg, err := config.WithDefault().
		WithAtCoderURL(testBaseURL).
		WithLevelDBDirectory(t.TempDir()).
		Build()
	require.NoError(t, err)
	mock := clienttest.Static("<a class='contest-title'>Title</a>")

	a, err := New(session.New(), cfg, WithRawClient(mock))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = a.Contest("c1").Name(ctx)
	require.NoError(t, err)
	_, err = a.Contest("c1").Name(ctx)
	require.NoError(t, err)
	assert.Len(t, mock.Calls(), 1)
	assert.NoError(t, a.Close())
}
