// Package errors provides the error type shared by the remote store drivers,
// the Content Store and the HTTP layer. Every failure that crosses a package
// boundary is a *UnifiedError so callers can classify it without string
// matching.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// ERROR CLASSIFICATION
// ============================================================================

// ErrorType defines the category of error for handling and HTTP mapping.
type ErrorType string

const (
	// Caller errors
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// Collaborator errors
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypeRemote      ErrorType = "REMOTE"
	ErrorTypeCircuitOpen ErrorType = "CIRCUIT_OPEN"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"

	ErrorTypeInternal ErrorType = "INTERNAL"
)

// ErrorSeverity drives the log level used when the error is reported.
type ErrorSeverity string

const (
	SeverityLow    ErrorSeverity = "LOW"
	SeverityMedium ErrorSeverity = "MEDIUM"
	SeverityHigh   ErrorSeverity = "HIGH"
)

// ============================================================================
// UNIFIED ERROR STRUCTURE
// ============================================================================

// UnifiedError carries the classification and context of a failure.
type UnifiedError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`

	// Operation is the failing step, e.g. "insert" or "bootstrap".
	Operation string `json:"operation,omitempty"`
	// Resource is the table or collection involved.
	Resource string `json:"resource,omitempty"`

	Severity  ErrorSeverity `json:"severity"`
	Retryable bool          `json:"retryable"`
	Cause     error         `json:"-"`

	File string `json:"-"`
	Line int    `json:"-"`
}

// Error implements the error interface.
func (e *UnifiedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s", e.Type, e.Code, e.Message)
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}
	if e.Cause != nil && e.Details == "" {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *UnifiedError) Unwrap() error {
	return e.Cause
}

// ============================================================================
// FLUENT BUILDER
// ============================================================================

// ErrorBuilder constructs UnifiedError values.
type ErrorBuilder struct {
	error *UnifiedError
}

// NewError starts a builder for the given type, code and message.
func NewError(errType ErrorType, code, message string) *ErrorBuilder {
	_, file, line, _ := runtime.Caller(1)
	return &ErrorBuilder{
		error: &UnifiedError{
			Type:     errType,
			Code:     code,
			Message:  message,
			Severity: SeverityMedium,
			File:     file,
			Line:     line,
		},
	}
}

func (b *ErrorBuilder) WithDetails(details string) *ErrorBuilder {
	b.error.Details = details
	return b
}

func (b *ErrorBuilder) WithOperation(operation string) *ErrorBuilder {
	b.error.Operation = operation
	return b
}

func (b *ErrorBuilder) WithResource(resource string) *ErrorBuilder {
	b.error.Resource = resource
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.error.Severity = severity
	return b
}

func (b *ErrorBuilder) WithRetryable(retryable bool) *ErrorBuilder {
	b.error.Retryable = retryable
	return b
}

func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	b.error.Cause = cause
	return b
}

// Build returns the constructed error.
func (b *ErrorBuilder) Build() *UnifiedError {
	return b.error
}

// ============================================================================
// CONVENIENCE CONSTRUCTORS
// ============================================================================

func Validation(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeValidation, code, message).WithSeverity(SeverityLow)
}

func NotFound(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeNotFound, code, message).WithSeverity(SeverityLow)
}

func Unauthorized(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeUnauthorized, code, message).WithSeverity(SeverityMedium)
}

// Unavailable marks a collaborator that is not configured at all.
func Unavailable(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeUnavailable, code, message).WithSeverity(SeverityMedium)
}

// Remote marks a request-level failure reported by a collaborator.
func Remote(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeRemote, code, message).
		WithSeverity(SeverityHigh).
		WithRetryable(true)
}

func CircuitOpen(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeCircuitOpen, code, message).
		WithSeverity(SeverityMedium).
		WithRetryable(true)
}

func Timeout(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeTimeout, code, message).
		WithSeverity(SeverityMedium).
		WithRetryable(true)
}

func Internal(code, message string) *ErrorBuilder {
	return NewError(ErrorTypeInternal, code, message).WithSeverity(SeverityHigh)
}

// ============================================================================
// CLASSIFICATION
// ============================================================================

// IsType reports whether any error in err's chain is a UnifiedError of errType.
func IsType(err error, errType ErrorType) bool {
	var unifiedErr *UnifiedError
	if errors.As(err, &unifiedErr) {
		return unifiedErr.Type == errType
	}
	return false
}

func IsValidation(err error) bool  { return IsType(err, ErrorTypeValidation) }
func IsNotFound(err error) bool    { return IsType(err, ErrorTypeNotFound) }
func IsUnavailable(err error) bool { return IsType(err, ErrorTypeUnavailable) }
func IsRemote(err error) bool      { return IsType(err, ErrorTypeRemote) }
func IsCircuitOpen(err error) bool { return IsType(err, ErrorTypeCircuitOpen) }

// IsRetryable checks if an error is marked retryable.
func IsRetryable(err error) bool {
	var unifiedErr *UnifiedError
	if errors.As(err, &unifiedErr) {
		return unifiedErr.Retryable
	}
	return false
}

// TypeOf returns the error's type, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var unifiedErr *UnifiedError
	if errors.As(err, &unifiedErr) {
		return unifiedErr.Type
	}
	return ErrorTypeInternal
}

// ============================================================================
// WRAPPING
// ============================================================================

// Wrap adds operation context to err while keeping its classification. Foreign
// errors become INTERNAL.
func Wrap(err error, operation, message string) *UnifiedError {
	if err == nil {
		return nil
	}

	var existing *UnifiedError
	if errors.As(err, &existing) {
		return &UnifiedError{
			Type:      existing.Type,
			Code:      existing.Code,
			Message:   message,
			Details:   existing.Message,
			Operation: operation,
			Resource:  existing.Resource,
			Severity:  existing.Severity,
			Retryable: existing.Retryable,
			Cause:     err,
			File:      existing.File,
			Line:      existing.Line,
		}
	}

	_, file, line, _ := runtime.Caller(1)
	return &UnifiedError{
		Type:      ErrorTypeInternal,
		Code:      CodeWrapped,
		Message:   message,
		Details:   err.Error(),
		Operation: operation,
		Severity:  SeverityMedium,
		Cause:     err,
		File:      file,
		Line:      line,
	}
}

// Is lets callers compare against a sentinel from the standard errors package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As re-exported so callers need a single errors import.
func As(err error, target any) bool { return errors.As(err, target) }
