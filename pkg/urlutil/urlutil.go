package urlutil

import (
	"net/url"
	"strings"
)

// Fingerprint returns the cache key for a request URL: the whole URL
// percent-encoded as a single query component. The result is safe to use
// as a file name.
func Fingerprint(rawURL string) string {
	return url.QueryEscape(rawURL)
}

// LastPathSegment returns the final "/"-delimited segment of an href,
// ignoring any query string or fragment.
func LastPathSegment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}

// Join appends path segments to base without doubling slashes.
func Join(base string, segments ...string) string {
	out := strings.TrimRight(base, "/")
	for _, s := range segments {
		out += "/" + strings.Trim(s, "/")
	}
	return out
}
