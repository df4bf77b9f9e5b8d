package fberr

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	NoSuchCase           ErrorCode = "NO_SUCH_CASE"
	AmbiguousResponse    ErrorCode = "AMBIGUOUS_RESPONSE"
	InvalidResponse      ErrorCode = "INVALID_RESPONSE"
	DecodeFailure        ErrorCode = "DECODE_FAILURE"
	MilestoneExists      ErrorCode = "MILESTONE_EXISTS"
	MilestoneNotEditable ErrorCode = "MILESTONE_NOT_EDITABLE"
)

// APIError is the error surface of the client. Err carries the underlying
// transport or parse cause when there is one.
type APIError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e APIError) Unwrap() error {
	return e.Err
}

// New builds an APIError with a formatted message.
func New(code ErrorCode, format string, args ...any) APIError {
	return APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an APIError around an underlying cause, keeping its message
// reachable through errors.Unwrap.
func Wrap(code ErrorCode, err error, format string, args ...any) APIError {
	return APIError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the error code, or "" when err is not an APIError.
func CodeOf(err error) ErrorCode {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
