package errors

import (
	stderrors "errors"
	"fmt"
)

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// FromRecovered turns a value obtained from recover() into an error.
// AppErrors pass through unchanged; anything else is wrapped as Internal.
func FromRecovered(r any) error {
	switch v := r.(type) {
	case nil:
		return nil
	case *AppError:
		return v
	case error:
		return Internal(v)
	default:
		return Internal(fmt.Errorf("%v", v))
	}
}
