package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeMissingInput  ErrorCode = "MISSING_INPUT"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeNotAuthorized ErrorCode = "NOT_AUTHORIZED"
	ErrCodeStoreFault    ErrorCode = "STORE_FAULT"
	ErrCodeInvalid       ErrorCode = "INVALID"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal      ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
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

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrRecordNotFound  = NewError(ErrCodeNotFound, "record not found")
	ErrProfileNotFound = NewError(ErrCodeNotFound, "profile not found")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrNotAuthorized   = NewError(ErrCodeNotAuthorized, "record does not belong to caller")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")
)

// MissingInput builds the caller error returned before any store call is attempted.
func MissingInput(message string) *Error {
	return NewError(ErrCodeMissingInput, message)
}

// StoreFault classifies a backend/network failure that prevented any resolution attempt.
func StoreFault(message string, err error) *Error {
	return WrapError(ErrCodeStoreFault, message, err)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
