package session

import (
	"fmt"

	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
)

type SessionErrorCause string

const (
	ErrCauseCorruptSnapshot SessionErrorCause = "corrupt snapshot"
	ErrCauseReadFailure     SessionErrorCause = "read failed"
	ErrCauseWriteFailure    SessionErrorCause = "write failed"
	ErrCauseDiskFull        SessionErrorCause = "disk is full"
	ErrCausePathError       SessionErrorCause = "path error"
)

type SessionError struct {
	Message   string
	Retryable bool
	Cause     SessionErrorCause
	Path      string
}

func (e *SessionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("session error: %s: %s (%s)", e.Cause, e.Message, e.Path)
	}
	return fmt.Sprintf("session error: %s: %s", e.Cause, e.Message)
}

func (e *SessionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSessionErrorToMetadataCause is observational only.
func mapSessionErrorToMetadataCause(err *SessionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure, ErrCauseWriteFailure, ErrCauseDiskFull, ErrCausePathError:
		return metadata.CauseStorageFailure
	case ErrCauseCorruptSnapshot:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
