package metadata

import (
	"log/slog"
	"time"
)

/*
Recorder captures structured client events and writes them through slog.
It must not:
- perform I/O decisions
- affect control flow
Events are emitted synchronously in the order they are received.
*/
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder returns a Recorder writing to logger, or slog.Default when nil.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		logger: logger.With(slog.String("component", "atcoder")),
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	args := []any{
		slog.Time("observed_at", observedAt),
		slog.String("package", packageName),
		slog.String("action", action),
		slog.String("cause", cause.String()),
		slog.String("details", details),
	}
	r.logger.Warn("error", append(args, toArgs(attrs)...)...)
}

func (r *Recorder) RecordFetch(event FetchEvent) {
	r.logger.Debug("fetch",
		slog.String(string(AttrMethod), event.Method),
		slog.String(string(AttrURL), event.URL),
		slog.Int(string(AttrHTTPStatus), event.HTTPStatus),
		slog.Duration("duration", event.Duration),
		slog.String(string(AttrContentType), event.ContentType),
	)
}

func (r *Recorder) RecordCache(outcome CacheOutcome, key string, attrs []Attribute) {
	args := []any{
		slog.String("outcome", string(outcome)),
		slog.String(string(AttrCacheKey), key),
	}
	r.logger.Debug("cache", append(args, toArgs(attrs)...)...)
}

func toArgs(attrs []Attribute) []any {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, slog.String(string(a.Key), a.Value))
	}
	return args
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordFetch(event FetchEvent)
	RecordCache(outcome CacheOutcome, key string, attrs []Attribute)
}

// NoopSink implements MetadataSink but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(event FetchEvent) {}

func (n *NoopSink) RecordCache(outcome CacheOutcome, key string, attrs []Attribute) {}
