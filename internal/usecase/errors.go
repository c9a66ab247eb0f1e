package usecase

import "fmt"

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// Reasons attached to ErrorInvalidInput.
const (
	ReasonMissingResumeOrJob = "missing_resume_or_job"
	ReasonEmptyMessages      = "empty_messages"
)

var publicMessages = map[string]string{
	ReasonMissingResumeOrJob: "resume and job fields are required",
	ReasonEmptyMessages:      "messages field must be a non-empty list",
}

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PublicMessage is the text safe to return to API callers.
func (e *Error) PublicMessage() string {
	if e == nil {
		return ""
	}
	if msg, ok := publicMessages[e.Reason]; ok {
		return msg
	}
	if e.Code == ErrorInvalidInput {
		return "invalid request"
	}
	return "internal error"
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
