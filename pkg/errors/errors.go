package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeSource  ErrorType = "source"
	ErrorTypeExport  ErrorType = "export"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeUnknown ErrorType = "unknown"
)

// Error represents a collector error with type information
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error without a cause
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Wrap attaches a type and message to an underlying error
func Wrap(errorType ErrorType, err error, message string) *Error {
	return &Error{Type: errorType, Message: message, Err: err}
}

// IsType reports whether any error in err's chain is an *Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Type == errorType
	}
	return false
}

// TypeOf returns the type of the first *Error in err's chain
func TypeOf(err error) ErrorType {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Type
	}
	return ErrorTypeUnknown
}
