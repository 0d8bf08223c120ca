package client

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
)

type ClientErrorCause string

const (
	ErrCauseNetworkFailure ClientErrorCause = "network issues"
	ErrCauseInvalidRequest ClientErrorCause = "invalid request"
)

// ErrRequestFailed matches every *RequestFailedError via errors.Is.
var ErrRequestFailed = errors.New("request failed")

// TransportError reports that the server could not be reached.
type TransportError struct {
	Message   string
	Retryable bool
	Cause     ClientErrorCause
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %s", e.Cause, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// RequestFailedError carries the full response of a status >= 400 reply.
type RequestFailedError struct {
	Method   string
	URL      string
	Response Response
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed: %s %s: status %d", e.Method, e.URL, e.Response.StatusCode)
}

func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestFailedError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// mapClientErrorToMetadataCause is observational only.
func mapClientErrorToMetadataCause(err error) metadata.ErrorCause {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Cause == ErrCauseNetworkFailure {
			return metadata.CauseNetworkFailure
		}
		return metadata.CauseUnknown
	}
	if errors.Is(err, ErrRequestFailed) {
		return metadata.CauseRequestRejected
	}
	return metadata.CauseUnknown
}
