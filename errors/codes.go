package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Dispatch errors
const (
	// ErrCodeUnknownLabel indicates a classifier produced a label it never declared.
	ErrCodeUnknownLabel ErrorCode = "UNKNOWN_LABEL"
)

// Construction errors
const (
	// ErrCodeDuplicateLabel indicates a classifier declared the same label twice.
	ErrCodeDuplicateLabel ErrorCode = "DUPLICATE_LABEL"
	// ErrCodeFrozen indicates an attachment was attempted on a frozen flow.
	ErrCodeFrozen ErrorCode = "FROZEN"
	// ErrCodeInvalidHandle indicates a zero or out-of-range node handle.
	ErrCodeInvalidHandle ErrorCode = "INVALID_HANDLE"
	// ErrCodeClassifierChild indicates an ordinary child was attached to a classifier.
	ErrCodeClassifierChild ErrorCode = "CLASSIFIER_CHILD"
)

// Validation and lookup errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// constructionCodes are raised as panics by the builder; they never reach Send.
var constructionCodes = map[ErrorCode]bool{
	ErrCodeDuplicateLabel:  true,
	ErrCodeFrozen:          true,
	ErrCodeInvalidHandle:   true,
	ErrCodeClassifierChild: true,
}

// IsConstructionCode reports whether code describes a tree-building contract violation.
func IsConstructionCode(code ErrorCode) bool {
	return constructionCodes[code]
}
