package summarizer

import (
	"context"
	"errors"
)

// Request describes a single summarization call.
type Request struct {
	// Text contains the original plain text to summarise.
	Text string
	// TargetWords is the approximate length of the requested summary.
	// Values outside [MinTargetWords, MaxTargetWords] are clamped.
	TargetWords int64
}

// Summarizer produces a single summary for a given request.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// FailureKind classifies why a summarization call failed. The UI layer
// renders a message per kind; callers never have to parse error strings.
type FailureKind string

const (
	FailureInvalidInput      FailureKind = "invalid_input"
	FailureMissingCredential FailureKind = "missing_credential"
	FailureNetwork           FailureKind = "network_error"
	FailureAuth              FailureKind = "auth_error"
	FailureRateLimited       FailureKind = "rate_limited"
	FailureProvider          FailureKind = "provider_error"
)

// Error is the typed failure returned by every Summarizer implementation.
type Error struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind FailureKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the failure kind from err. Errors that did not originate
// from a Summarizer are reported as FailureProvider.
func KindOf(err error) FailureKind {
	var sErr *Error
	if errors.As(err, &sErr) {
		return sErr.Kind
	}

	return FailureProvider
}
