package atcoder

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
)

// ErrLoginFailed matches every *LoginError via errors.Is.
var ErrLoginFailed = errors.New("login failed")

// LoginError reports a login POST answered with a non-empty body.
type LoginError struct {
	Body string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %s", e.Body)
}

func (e *LoginError) Is(target error) bool {
	return target == ErrLoginFailed
}

func (e *LoginError) Severity() failure.Severity {
	return failure.SeverityFatal
}

type ContentErrorCause string

const (
	ErrCauseUnparsableHTML ContentErrorCause = "unparsable html"
	ErrCauseUnparsableJSON ContentErrorCause = "unparsable json"
)

// ContentError reports a body that could not be read as a document at all.
// Unexpected page shapes are never errors; they yield zero values.
type ContentError struct {
	Message string
	Cause   ContentErrorCause
	URL     string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content error: %s: %s", e.Cause, e.Message)
}

func (e *ContentError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// mapErrorToMetadataCause is observational only.
func mapErrorToMetadataCause(err error) metadata.ErrorCause {
	var contentErr *ContentError
	switch {
	case errors.Is(err, ErrLoginFailed):
		return metadata.CauseAuthFailure
	case errors.As(err, &contentErr):
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
