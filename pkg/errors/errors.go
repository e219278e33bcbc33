// Package errors carries coded errors shared by every prismatic package.
// Codes are stable and are what tests and the HTTP layer match on.
package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

func (c ErrorCode) String() string { return string(c) }

const (
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCatalogLoad     ErrorCode = "CATALOG_LOAD"
	ErrCatalogParse    ErrorCode = "CATALOG_PARSE"
	ErrCatalogInvalid  ErrorCode = "CATALOG_INVALID"
	ErrUnknownCategory ErrorCode = "UNKNOWN_CATEGORY"

	ErrMissingTitle    ErrorCode = "DEFINITION_MISSING_TITLE"
	ErrDependencyCycle ErrorCode = "DEPENDENCY_CYCLE"

	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	ErrPublish ErrorCode = "PUBLISH"
)

// PrismError is a coded error with optional context. Details is nil until
// the first detail is attached.
type PrismError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func build(code ErrorCode, cause error, message string) *PrismError {
	return &PrismError{Code: code, Message: message, Wrapped: cause}
}

func New(code ErrorCode, message string) *PrismError {
	return build(code, nil, message)
}

func Newf(code ErrorCode, format string, args ...interface{}) *PrismError {
	return build(code, nil, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *PrismError {
	if err == nil {
		return nil
	}
	return build(code, err, message)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrismError {
	if err == nil {
		return nil
	}
	return build(code, err, fmt.Sprintf(format, args...))
}

// Error renders "[CODE] message" followed by ": cause" when wrapping
func (e *PrismError) Error() string {
	head := "[" + string(e.Code) + "] " + e.Message
	if e.Wrapped == nil {
		return head
	}
	return head + ": " + e.Wrapped.Error()
}

func (e *PrismError) Unwrap() error { return e.Wrapped }

// Is matches any *PrismError carrying the same code
func (e *PrismError) Is(target error) bool {
	other, ok := target.(*PrismError)
	return ok && other.Code == e.Code
}

func (e *PrismError) WithDetail(key string, value interface{}) *PrismError {
	return e.WithDetails(map[string]interface{}{key: value})
}

func (e *PrismError) WithDetails(details map[string]interface{}) *PrismError {
	if len(details) == 0 {
		return e
	}
	if e.Details == nil {
		e.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode reports whether any error in err's chain carries code.
// Plain wrappers such as fmt.Errorf("%w") are walked through.
func IsErrorCode(err error, code ErrorCode) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if pe, ok := err.(*PrismError); ok && pe.Code == code {
			return true
		}
	}
	return false
}

// GetErrorCode returns the code of the outermost PrismError, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	if pe := outermost(err); pe != nil {
		return pe.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the outermost PrismError
func GetErrorDetails(err error) map[string]interface{} {
	if pe := outermost(err); pe != nil {
		return pe.Details
	}
	return nil
}

func outermost(err error) *PrismError {
	var pe *PrismError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}
