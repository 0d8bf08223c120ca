package metadata

import (
	"time"
)

/*
Metadata Collected
- Request URLs, methods and HTTP status codes
- Request durations
- Cache hits, misses, stores and clears
- Classified errors

Metadata is write-only.
No component may read metadata to influence request, cache or parse decisions.
*/

type FetchEvent struct {
	Method      string
	URL         string
	HTTPStatus  int
	Duration    time.Duration
	ContentType string
}

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, reporting).

  - ErrorCause MUST NOT influence control flow.
  - Packages MAY map their local errors to ErrorCause,
    but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	// CauseUnknown is the fallback for unclassified failures.
	CauseUnknown ErrorCause = iota
	// CauseNetworkFailure covers transport failures: DNS, resets, timeouts.
	CauseNetworkFailure
	// CauseRequestRejected covers HTTP status >= 400.
	CauseRequestRejected
	// CauseAuthFailure covers a rejected login.
	CauseAuthFailure
	// CauseContentInvalid covers bodies that could not be parsed at all.
	CauseContentInvalid
	// CauseStorageFailure covers cache and session persistence failures.
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseRequestRejected:
		return "request_rejected"
	case CauseAuthFailure:
		return "auth_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

type CacheOutcome string

const (
	CacheHit   CacheOutcome = "hit"
	CacheMiss  CacheOutcome = "miss"
	CacheStore CacheOutcome = "store"
	CacheSkip  CacheOutcome = "skip"
	CacheClear CacheOutcome = "clear"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL         AttributeKey = "url"
	AttrMethod      AttributeKey = "method"
	AttrHTTPStatus  AttributeKey = "http_status"
	AttrContentType AttributeKey = "content_type"
	AttrCacheKey    AttributeKey = "cache_key"
	AttrContest     AttributeKey = "contest"
	AttrTask        AttributeKey = "task"
	AttrSubmission  AttributeKey = "submission"
	AttrPath        AttributeKey = "path"
	AttrMessage     AttributeKey = "message"
)
