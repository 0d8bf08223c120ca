package client

import (
	"encoding/json"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/rohmanhakim/atcoder-cli/internal/session"
)

// Response is what every link of the client chain returns.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r Response) Text() string {
	return string(r.Body)
}

// IsText reports whether Body may be cached and parsed as text: it must be
// valid UTF-8, and a declared content type must be a textual one.
func (r Response) IsText() bool {
	if !utf8.Valid(r.Body) {
		return false
	}
	if r.ContentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(r.ContentType, ";")[0]))
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case strings.HasSuffix(mediaType, "json"),
		strings.HasSuffix(mediaType, "xml"),
		strings.HasSuffix(mediaType, "javascript"):
		return true
	default:
		return false
	}
}

type responseJSON struct {
	StatusCode  int    `json:"statusCode"`
	ContentType string `json:"contentType,omitempty"`
	Body        string `json:"body"`
}

// MarshalJSON keeps the body readable in file caches. Only IsText bodies
// are cached, so the string form is lossless.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseJSON{
		StatusCode:  r.StatusCode,
		ContentType: r.ContentType,
		Body:        string(r.Body),
	})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var raw responseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.StatusCode = raw.StatusCode
	r.ContentType = raw.ContentType
	r.Body = []byte(raw.Body)
	return nil
}

// Options carries per-request state.
type Options struct {
	// Session supplies the cookie jar; nil sends no cookies.
	Session *session.Session
	Headers map[string]string
}
