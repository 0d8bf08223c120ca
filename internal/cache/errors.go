package cache

import (
	"fmt"

	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseEncodeFailure CacheErrorCause = "encode failed"
	ErrCauseWriteFailure  CacheErrorCause = "write failed"
	ErrCauseClearFailure  CacheErrorCause = "clear failed"
	ErrCauseOpenFailure   CacheErrorCause = "open failed"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Key       string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
