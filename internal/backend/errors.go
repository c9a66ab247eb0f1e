package backend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend failures for logging.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindTransport     ErrorKind = "transport"
	KindResponseShape ErrorKind = "response_shape"
	KindUnparseable   ErrorKind = "unparseable"
	KindUnknown       ErrorKind = "unknown"
)

// ErrNoStructuredResult reports that a structured request produced text that
// is not a JSON document. It signals absence of a result rather than failure.
var ErrNoStructuredResult = errors.New("backend: no structured result")

// Error is a classified backend failure.
type Error struct {
	Kind    ErrorKind
	Backend string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("backend %s: %s error", e.Backend, e.Kind)
	}
	return fmt.Sprintf("backend %s: %s error: %v", e.Backend, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, backend string, err error) *Error {
	return &Error{Kind: kind, Backend: backend, Err: err}
}

// KindOf returns the classification of err.
func KindOf(err error) ErrorKind {
	if errors.Is(err, ErrNoStructuredResult) {
		return KindUnparseable
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}
