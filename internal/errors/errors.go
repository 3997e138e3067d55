// Package errors provides custom error types for the FinanceHub API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrStorage        = &AppError{Code: "STORAGE_FAILURE", Message: "The local store could not be read or written", StatusCode: http.StatusInternalServerError}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrCardRequired           = &AppError{Code: "CARD_REQUIRED", Message: "Credit transactions must reference a card", StatusCode: http.StatusBadRequest}
)

// Card errors.
var (
	ErrCardNotFound = &AppError{Code: "CARD_NOT_FOUND", Message: "Card not found", StatusCode: http.StatusNotFound}
)

// Goal errors.
var (
	ErrGoalNotFound    = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrNotSavingsGoal  = &AppError{Code: "NOT_SAVINGS_GOAL", Message: "Progress can only be recorded on savings goals", StatusCode: http.StatusBadRequest}
	ErrCategoryMissing = &AppError{Code: "CATEGORY_REQUIRED", Message: "Budget goals must name a category", StatusCode: http.StatusBadRequest}
)

// Investment errors.
var (
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
)

// Notification errors. Reminders have no not-found sentinel: their delete is
// an idempotent no-op.
var (
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)

// Profile errors. A PIN mismatch is not an error; VerifyPIN reports it as a
// plain false.
var (
	ErrProfileNotFound = &AppError{Code: "PROFILE_NOT_FOUND", Message: "Profile not found", StatusCode: http.StatusNotFound}
)

// Sync errors. Background sync failures are absorbed by the syncer and only
// logged; these sentinels surface when a push or pull is requested explicitly.
var (
	ErrSyncFailed   = &AppError{Code: "SYNC_FAILED", Message: "Remote synchronization failed", StatusCode: http.StatusBadGateway}
	ErrSyncInFlight = &AppError{Code: "SYNC_IN_FLIGHT", Message: "A push is already in progress", StatusCode: http.StatusConflict}
	ErrSyncDisabled = &AppError{Code: "SYNC_DISABLED", Message: "No remote store is configured", StatusCode: http.StatusConflict}
)

// Import errors.
var (
	ErrInvalidEnvelope = &AppError{Code: "INVALID_ENVELOPE", Message: "Import payload is not a valid data envelope", StatusCode: http.StatusBadRequest}
)
