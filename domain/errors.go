package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
// The values mirror the mainframe service's response-code aliases rather than
// HTTP statuses; the transport layer maps them onto HTTP.
type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeDenied       ErrorCode = "ACCESSDENIED"
	ErrCodeInvalidParm  ErrorCode = "INVALIDPARM"
	ErrCodeNotAvailable ErrorCode = "NOTAVAILABLE"
	ErrCodeInternal     ErrorCode = "INVALIDDATA"
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
	ErrAuthRequired       = NewError(ErrCodeUnauthorized, "authentication required")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "invalid username or password")
	ErrInvalidToken       = NewError(ErrCodeUnauthorized, "invalid or expired token")
	ErrUnknownResource    = NewError(ErrCodeInvalidParm, "unrecognized resource type")
	ErrTokenNotFound      = NewError(ErrCodeNotAvailable, "result set not available")
	ErrAccessDenied       = NewError(ErrCodeDenied, "result set belongs to another session")
	ErrSessionNotFound    = NewError(ErrCodeNotAvailable, "session not found")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
