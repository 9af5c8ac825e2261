package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 error: the client must fix the input and resend.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Amount must be a positive integer", http.StatusBadRequest)
}

// ---- Authentication & Authorization (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Missing or invalid credential", http.StatusUnauthorized)
}

func ErrForbiddenRole(required string) *AppError {
	return New("AUTH_002", fmt.Sprintf("Operation requires the %s role", required), http.StatusForbidden)
}

// ---- Resources (RES) ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- External ledger (CHN) ----

// ErrChainSubmission reports a failed external ledger submission. Nothing was
// persisted locally; the donation did not happen.
func ErrChainSubmission(err error) *AppError {
	return Wrap("CHN_001", "Ledger submission failed; the donation was not made", http.StatusBadGateway, err)
}

// ErrRecordAfterConfirm reports a local persistence failure AFTER the external
// ledger confirmed the transfer. The message carries the transaction reference
// so the caller can retry the local record step with it; the transfer itself
// must never be resubmitted.
func ErrRecordAfterConfirm(txRef string, err error) *AppError {
	return Wrap(
		"CHN_002",
		fmt.Sprintf("Donation confirmed on ledger (ref %s) but not recorded; retry the record step with this reference", txRef),
		http.StatusInternalServerError,
		err,
	)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
