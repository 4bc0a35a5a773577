package state

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a rejected mutation.
type ErrorCode string

const (
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Error is returned when a mutation is refused. A refused mutation never
// changes any collection.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrTaskTitleRequired  = NewError(ErrCodeInvalid, "task title is required")
	ErrReminderIncomplete = NewError(ErrCodeInvalid, "medication name and time are required")
	ErrPhoneRequired      = NewError(ErrCodeInvalid, "phone number is required")
	ErrCommentEmpty       = NewError(ErrCodeInvalid, "comment text is required")
	ErrDuplicateContact   = NewError(ErrCodeConflict, "a contact with this phone number already exists")
	ErrPostNotFound       = NewError(ErrCodeNotFound, "post not found")
)

// IsCode reports whether err is a state error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var sErr *Error
	if errors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
