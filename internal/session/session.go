package session

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

/*
Responsibilities
- Hold the cookie jar replayed on every request of one run
- Snapshot the cookies the server set so they can be persisted

The jar is only appended to (or overwritten per cookie) by responses.
Persistence format is opaque to callers: MarshalJSON / FromJSON.
*/

type Session struct {
	jar *recordingJar
}

// New returns an empty session.
func New() *Session {
	// cookiejar.New only fails on a nil PublicSuffixList check that never triggers here.
	inner, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &Session{
		jar: &recordingJar{
			inner:   inner,
			records: map[recordKey]storedCookie{},
		},
	}
}

// Jar returns the cookie jar to attach to an http.Client.
func (s *Session) Jar() http.CookieJar {
	return s.jar
}

// Cookies returns the cookies the jar would send to rawURL.
func (s *Session) Cookies(rawURL string) []*http.Cookie {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return s.jar.Cookies(u)
}

// Len returns the number of distinct cookies recorded.
func (s *Session) Len() int {
	s.jar.mu.Lock()
	defer s.jar.mu.Unlock()
	return len(s.jar.records)
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.jar.snapshot())
}

// FromJSON restores a session from a MarshalJSON snapshot.
// Expired cookies are dropped by the jar as usual.
func FromJSON(data []byte) (*Session, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &SessionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCorruptSnapshot,
		}
	}
	s := New()
	for _, c := range snap.Cookies {
		u, err := url.Parse(c.URL)
		if err != nil {
			continue
		}
		s.jar.SetCookies(u, []*http.Cookie{c.toHTTP()})
	}
	return s, nil
}

type recordKey struct {
	host string
	path string
	name string
}

type recordingJar struct {
	inner   *cookiejar.Jar
	mu      sync.Mutex
	records map[recordKey]storedCookie
}

func (j *recordingJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()
	origin := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	for _, c := range cookies {
		key := recordKey{host: u.Host, path: c.Path, name: c.Name}
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(j.records, key)
			continue
		}
		j.records[key] = fromHTTP(origin.String(), c)
	}
}

func (j *recordingJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

func (j *recordingJar) snapshot() snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := snapshot{Cookies: make([]storedCookie, 0, len(j.records))}
	for _, c := range j.records {
		out.Cookies = append(out.Cookies, c)
	}
	sort.Slice(out.Cookies, func(a, b int) bool {
		ca, cb := out.Cookies[a], out.Cookies[b]
		if ca.URL != cb.URL {
			return ca.URL < cb.URL
		}
		if ca.Path != cb.Path {
			return ca.Path < cb.Path
		}
		return ca.Name < cb.Name
	})
	return out
}
