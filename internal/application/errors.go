package application

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed taxonomy surfaced to the embedding application.
type ErrorKind string

const (
	KindInternetConnection    ErrorKind = "internet_connection"
	KindInvalidConfiguration  ErrorKind = "invalid_configuration"
	KindInterrupted           ErrorKind = "interrupted"
	KindInternal              ErrorKind = "internal_error"
	KindValidation            ErrorKind = "validation"
	KindAuthChallenge         ErrorKind = "auth_challenge"
	KindPaymentMethodNotFound ErrorKind = "payment_method_not_found"
	KindMissingCredential     ErrorKind = "missing_credential"
	KindEmptyList             ErrorKind = "empty_list"
)

// ProcessingError is an error already normalized by MapError.
type ProcessingError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func NewInternetConnectionError(err error) *ProcessingError {
	return &ProcessingError{
		Kind:    KindInternetConnection,
		Message: "no internet connection",
		Err:     err,
	}
}

func IsProcessingError(err error) (*ProcessingError, bool) {
	var procErr *ProcessingError
	ok := errors.As(err, &procErr)
	return procErr, ok
}
