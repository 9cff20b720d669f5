package application

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/fingerprint"
)

// MapError normalizes a terminal failure once at the flow boundary.
// Connection failures become internet connection errors; everything else,
// including errors already mapped, passes through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := IsProcessingError(err); ok {
		return err
	}

	if errors.Is(err, fingerprint.ErrConnectionFail) || IsNetworkError(err) {
		return NewInternetConnectionError(err)
	}

	return err
}

// KindOf classifies any error into the taxonomy.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	if procErr, ok := IsProcessingError(err); ok {
		return procErr.Kind
	}

	switch {
	case errors.Is(err, fingerprint.ErrConnectionFail):
		return KindInternetConnection
	case errors.Is(err, fingerprint.ErrInvalidConfiguration):
		return KindInvalidConfiguration
	case errors.Is(err, domain.ErrInterrupted),
		errors.Is(err, context.Canceled):
		return KindInterrupted
	case errors.Is(err, fingerprint.ErrInternal):
		return KindInternal
	case errors.Is(err, domain.ErrPaymentMethodNotFound):
		return KindPaymentMethodNotFound
	case errors.Is(err, domain.ErrMissingCredential):
		return KindMissingCredential
	case errors.Is(err, domain.ErrEmptyPaymentOptions):
		return KindEmptyList
	}

	if _, ok := domain.IsAuthError(err); ok {
		return KindAuthChallenge
	}

	if domain.IsValidationError(err) {
		return KindValidation
	}

	if IsNetworkError(err) {
		return KindInternetConnection
	}

	return KindInternal
}

// IsRetryable reports whether the caller may safely repeat the call.
// Only pure reads qualify; tokenization is never retried.
func IsRetryable(err error, pureRead bool) bool {
	return pureRead && KindOf(err) == KindInternetConnection
}

// IsNetworkError reports transport level failures, timeouts included.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	// A cancelled request was abandoned by the caller, not the network.
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Covers *url.Error and *net.OpError.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH)
}
