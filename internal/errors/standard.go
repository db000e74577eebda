// Package errors provides standardized error values for failures that are
// not syntax diagnostics: a broken token source, unreadable inputs,
// invalid configuration or options.
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategorySource     ErrorCategory = "SOURCE"
	CategoryIO         ErrorCategory = "IO"
	CategoryConfig     ErrorCategory = "CONFIG"
	CategoryValidation ErrorCategory = "VALIDATION"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Cause    error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StandardError) Unwrap() error { return e.Cause }

// Is matches another StandardError with the same category and code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Category == e.Category && t.Code == e.Code
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrTokenSource   = &StandardError{Category: CategorySource, Code: "TOKEN_SOURCE_FAILURE"}
	ErrReadFailure   = &StandardError{Category: CategoryIO, Code: "READ_FAILURE"}
	ErrInvalidConfig = &StandardError{Category: CategoryConfig, Code: "INVALID_CONFIG"}
	ErrInvalidOption = &StandardError{Category: CategoryValidation, Code: "INVALID_OPTION"}
	ErrUnformattable = &StandardError{Category: CategoryValidation, Code: "UNFORMATTABLE"}
)

// TokenSourceFailure reports that the token source failed after offset
// tokens had been read. The parse that hit it is abandoned.
func TokenSourceFailure(tokens int, cause error) *StandardError {
	e := NewStandardError(CategorySource, ErrTokenSource.Code,
		fmt.Sprintf("token source failed after %d tokens", tokens),
		map[string]interface{}{"tokens": tokens})
	e.Cause = cause
	return e
}

// ReadFailure reports an unreadable input file.
func ReadFailure(path string, cause error) *StandardError {
	e := NewStandardError(CategoryIO, ErrReadFailure.Code,
		fmt.Sprintf("cannot read %s", path),
		map[string]interface{}{"path": path})
	e.Cause = cause
	return e
}

// InvalidConfig reports a configuration file that cannot be used.
func InvalidConfig(path, detail string, cause error) *StandardError {
	e := NewStandardError(CategoryConfig, ErrInvalidConfig.Code,
		fmt.Sprintf("invalid configuration %s: %s", path, detail),
		map[string]interface{}{"path": path})
	e.Cause = cause
	return e
}

// InvalidOption reports a parser option with an unusable value.
func InvalidOption(name string, value interface{}, cause error) *StandardError {
	e := NewStandardError(CategoryValidation, ErrInvalidOption.Code,
		fmt.Sprintf("invalid value %v for option %s", value, name),
		map[string]interface{}{"option": name, "value": value})
	e.Cause = cause
	return e
}

// Unformattable reports a file the formatter refuses to rewrite.
func Unformattable(path, detail string) *StandardError {
	return NewStandardError(CategoryValidation, ErrUnformattable.Code,
		fmt.Sprintf("cannot format %s: %s", path, detail),
		map[string]interface{}{"path": path})
}
