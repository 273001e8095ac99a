package ingesterr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so the classification survives past the
// catch boundary and onto the run record.
type Kind string

const (
	// KindTransient covers network/timeout/non-2xx fetch failures that
	// exhausted their retry budget.
	KindTransient Kind = "transient"
	// KindData covers malformed or unexpected source data.
	KindData Kind = "data"
	// KindPersistence covers store failures (unreachable, constraint
	// violation) during upserts and bulk inserts.
	KindPersistence Kind = "persistence"
	// KindPrecondition covers failures raised before any fetch is
	// attempted, e.g. a missing backing store.
	KindPrecondition Kind = "precondition"
)

// Error is a structured ingestion failure value.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the classification from err; errors that were never
// classified are treated as data errors.
func KindOf(err error) Kind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindData
}
