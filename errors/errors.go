package errors

import (
	"fmt"
)

// AppError is the unified library error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// UnknownLabel creates an AppError for a classification label outside the declared set.
func UnknownLabel(label any, declared int) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownLabel,
		Message: fmt.Sprintf("classifier produced undeclared label %v", label),
		Details: map[string]any{"label": label, "declared": declared},
	}
}

// DuplicateLabel creates an AppError for a label declared more than once.
func DuplicateLabel(label any, index int) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateLabel,
		Message: fmt.Sprintf("label %v declared more than once", label),
		Details: map[string]any{"label": label, "index": index},
	}
}

// Frozen creates an AppError for attaching to a frozen flow.
func Frozen(flow string) *AppError {
	return &AppError{
		Code:    ErrCodeFrozen,
		Message: "flow is frozen; no further nodes can be attached",
		Details: map[string]any{"flow": flow},
	}
}

// InvalidHandle creates an AppError for a node handle that does not address a node.
func InvalidHandle(id int) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidHandle,
		Message: "node handle does not refer to a node of this flow",
		Details: map[string]any{"node": id},
	}
}

// ClassifierChild creates an AppError for attaching an ordinary child to a classifier.
func ClassifierChild(id int) *AppError {
	return &AppError{
		Code:    ErrCodeClassifierChild,
		Message: "a classifier has no ordinary children; extend its class handles instead",
		Details: map[string]any{"node": id},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q not found", resource, id),
		Details: details,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "an unexpected error occurred",
		Cause:   cause,
	}
}
