package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no open exchange rate exists for the requested pair.
var ErrRateUnavailable = errors.New("no current exchange rate for currency pair")

// ErrNoFeeRuleMatched indicates that no active fee rule covers the requested
// type/currency/amount. Callers must surface this rather than apply a zero fee.
var ErrNoFeeRuleMatched = errors.New("no fee rule matched")

// ErrInvalidTransition indicates that a status transition was attempted from a
// state that does not permit it. Webhook handlers treat this as an idempotent no-op.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrAlreadyPending indicates that a trustline operation is already in flight
// for the wallet.
var ErrAlreadyPending = errors.New("trustline operation already pending")

// ErrVerificationFailed indicates that a webhook signature did not verify
// against the provider's shared secret.
var ErrVerificationFailed = errors.New("signature verification failed")

// ErrRetryExhausted indicates that a bounded retry counter hit its cap.
var ErrRetryExhausted = errors.New("retry limit exhausted")

// ErrIntegrityViolation indicates an invariant the store should have enforced
// was observed broken (two open rates, two pending trustlines). It is a bug,
// never auto-healed.
var ErrIntegrityViolation = errors.New("data integrity violation")

// ErrTrustlineRequired indicates an AFRI-denominated transaction cannot
// complete because the wallet has no confirmed trustline.
var ErrTrustlineRequired = errors.New("wallet has no confirmed trustline")

// AppError carries a status code alongside the wrapped cause; the shape the
// repositories use for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic application error with a status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an error that unwraps to ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewNotFoundError creates an error that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
