package metadata_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedRecorder(t *testing.T) (*metadata.Recorder, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return metadata.NewRecorder(logger), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestRecorder_RecordFetch(t *testing.T) {
	r, buf := newBufferedRecorder(t)

	r.RecordFetch(metadata.FetchEvent{
		Method:      "GET",
		URL:         "https://atcoder.jp/contests/abc100/tasks?lang=en",
		HTTPStatus:  200,
		Duration:    15 * time.Millisecond,
		ContentType: "text/html; charset=utf-8",
	})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "fetch", lines[0]["msg"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.Equal(t, float64(200), lines[0]["http_status"])
	assert.Equal(t, "atcoder", lines[0]["component"])
}

func TestRecorder_RecordError(t *testing.T) {
	r, buf := newBufferedRecorder(t)

	r.RecordError(
		time.Now(),
		"client",
		"HttpClient.Get",
		metadata.CauseNetworkFailure,
		"connection refused",
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, "http://tmp/")},
	)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "network_failure", lines[0]["cause"])
	assert.Equal(t, "http://tmp/", lines[0]["url"])
	assert.Equal(t, "connection refused", lines[0]["details"])
}

func TestRecorder_RecordCache(t *testing.T) {
	r, buf := newBufferedRecorder(t)

	r.RecordCache(metadata.CacheHit, "key", nil)
	r.RecordCache(metadata.CacheClear, "", []metadata.Attribute{metadata.NewAttr(metadata.AttrMessage, "login")})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "hit", lines[0]["outcome"])
	assert.Equal(t, "key", lines[0]["cache_key"])
	assert.Equal(t, "clear", lines[1]["outcome"])
	assert.Equal(t, "login", lines[1]["message"])
}

func TestErrorCause_String(t *testing.T) {
	assert.Equal(t, "unknown", metadata.CauseUnknown.String())
	assert.Equal(t, "request_rejected", metadata.CauseRequestRejected.String())
	assert.Equal(t, "auth_failure", metadata.CauseAuthFailure.String())
	assert.Equal(t, "storage_failure", metadata.CauseStorageFailure.String())
	assert.Equal(t, "unknown", metadata.ErrorCause(99).String())
}

func TestNoopSink_ImplementsSink(t *testing.T) {
	var sink metadata.MetadataSink = &metadata.NoopSink{}
	sink.RecordFetch(metadata.FetchEvent{})
	sink.RecordCache(metadata.CacheMiss, "k", nil)
	sink.RecordError(time.Now(), "p", "a", metadata.CauseUnknown, "d", nil)
}
