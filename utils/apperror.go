package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies business failures so callers can branch on them.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindConflict          ErrorKind = "CONFLICT"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindBadRequest        ErrorKind = "BAD_REQUEST"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindCouponInvalid     ErrorKind = "COUPON_INVALID"
)

// AppError is a business rule violation with a message meant for the caller.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return NewAppError(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return NewAppError(KindForbidden, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return NewAppError(KindConflict, format, args...)
}

func InvalidState(format string, args ...any) *AppError {
	return NewAppError(KindInvalidState, format, args...)
}

func BadRequest(format string, args ...any) *AppError {
	return NewAppError(KindBadRequest, format, args...)
}

// KindOf returns the kind of the first AppError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the response status; unknown errors are 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict, KindInvalidState:
		return http.StatusConflict
	case KindBadRequest, KindCouponInvalid:
		return http.StatusBadRequest
	case KindInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
