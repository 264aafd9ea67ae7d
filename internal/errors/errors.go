// Package errors provides the tagged error type used across the budgethub API.
// Services return *AppError values; the HTTP layer inspects the Kind to pick a
// status code and never shows the wrapped internal error to clients.
package errors

import "errors"

// Kind classifies an AppError independently of any transport.
type Kind int

const (
	// KindStoreFailure is the zero value so that a bare AppError is treated as internal.
	KindStoreFailure Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientFunds
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInsufficientFunds:
		return "insufficient_funds"
	default:
		return "store_failure"
	}
}

// AppError represents a structured application error with a kind, a stable
// error code, a human-readable message, and an optional internal error.
type AppError struct {
	Kind     Kind   `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies of a sentinel still match it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same kind/code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:     sentinel.Kind,
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:     sentinel.Kind,
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// KindOf returns the Kind of err. Errors that are not AppErrors are store failures.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Kind: KindValidation, Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrNotFound       = &AppError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "Resource not found"}
	ErrInternalServer = &AppError{Kind: KindStoreFailure, Code: "INTERNAL_ERROR", Message: "An internal error occurred"}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Kind: KindNotFound, Code: "BUDGET_NOT_FOUND", Message: "Budget not found"}
)

// Savings errors.
var (
	ErrSavingsCategoryNotFound = &AppError{Kind: KindNotFound, Code: "SAVINGS_CATEGORY_NOT_FOUND", Message: "Savings category not found"}
	ErrInsufficientFunds       = &AppError{Kind: KindInsufficientFunds, Code: "INSUFFICIENT_FUNDS", Message: "Insufficient funds in this savings category"}
	ErrSameCategoryTransfer    = &AppError{Kind: KindValidation, Code: "SAME_CATEGORY_TRANSFER", Message: "Cannot transfer to the same category"}
	ErrInvalidSavingsSource    = &AppError{Kind: KindValidation, Code: "INVALID_SAVINGS_SOURCE", Message: "Unsupported transaction source"}
)
