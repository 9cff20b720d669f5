package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a locally detected validation failure.
type DomainError struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Domain validation errors
const (
	ErrCodeInvalidCardNumber    = "INVALID_CARD_NUMBER"
	ErrCodeInvalidCSC           = "INVALID_CSC"
	ErrCodeInvalidExpiry        = "INVALID_EXPIRY"
	ErrCodeInvalidPhone         = "INVALID_PHONE"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeCurrencyMismatch     = "CURRENCY_MISMATCH"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidField         = "INVALID_FIELD"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrMissingCredential     = errors.New("wallet credential is missing")
	ErrEmptyPaymentOptions   = errors.New("no payment options available")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
	// ErrInterrupted resolves an operation superseded by a newer one or abandoned.
	ErrInterrupted = errors.New("operation interrupted")
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidCardNumberError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCardNumber,
		Field:   "number",
		Message: "card number is invalid",
	}
}

func NewInvalidCSCError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCSC,
		Field:   "csc",
		Message: "card security code is invalid",
	}
}

func NewInvalidExpiryError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidExpiry,
		Field:   "expiry",
		Message: fmt.Sprintf("card expiry is invalid: %s", reason),
	}
}

func NewInvalidPhoneError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidPhone,
		Field:   "phone_number",
		Message: "phone number is invalid",
	}
}

func NewInvalidAmountError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Field:   "amount",
		Message: fmt.Sprintf("invalid amount: %s", reason),
	}
}

func NewCurrencyMismatchError(expected, actual Currency) *DomainError {
	return &DomainError{
		Code:    ErrCodeCurrencyMismatch,
		Field:   "currency",
		Message: fmt.Sprintf("currency mismatch: expected %s, got %s", expected, actual),
		Err:     ErrCurrencyMismatch,
	}
}

func NewInvalidFieldError(field string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidField,
		Field:   field,
		Message: fmt.Sprintf("%s is invalid", field),
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsValidationError reports whether err was produced by local validation.
func IsValidationError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// AuthErrorCode enumerates wallet challenge failures reported by the backend.
type AuthErrorCode string

const (
	AuthInvalidContext         AuthErrorCode = "invalid_context"
	AuthSessionsExceeded       AuthErrorCode = "sessions_exceeded"
	AuthVerifyAttemptsExceeded AuthErrorCode = "verify_attempts_exceeded"
	AuthExecuteError           AuthErrorCode = "execute_error"
	AuthSessionDoesNotExist    AuthErrorCode = "session_does_not_exist"
	AuthUnsupportedAuthType    AuthErrorCode = "unsupported_auth_type"
	AuthInvalidAnswer          AuthErrorCode = "invalid_answer"
)

// AuthError is a typed wallet authentication failure. It is already
// presentable, so mappers pass it through untouched.
type AuthError struct {
	Code AuthErrorCode
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("wallet authorization failed: %s", e.Code)
}

// Is matches any *AuthError with the same code.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

func NewAuthError(code AuthErrorCode) *AuthError {
	return &AuthError{Code: code}
}

// IsAuthError unwraps err into an *AuthError.
func IsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	ok := errors.As(err, &authErr)
	return authErr, ok
}

// ParseAuthErrorCode recognises the codes the wallet API returns.
func ParseAuthErrorCode(code string) (AuthErrorCode, bool) {
	switch c := AuthErrorCode(code); c {
	case AuthInvalidContext, AuthSessionsExceeded, AuthVerifyAttemptsExceeded,
		AuthExecuteError, AuthSessionDoesNotExist, AuthUnsupportedAuthType, AuthInvalidAnswer:
		return c, true
	}
	return "", false
}
