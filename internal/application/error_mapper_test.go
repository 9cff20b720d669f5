package application_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dialErr = &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want application.ErrorKind
	}{
		{"nil", nil, ""},
		{"fingerprint connection", fingerprint.ErrConnectionFail, application.KindInternetConnection},
		{"fingerprint configuration", fmt.Errorf("configure: %w", fingerprint.ErrInvalidConfiguration), application.KindInvalidConfiguration},
		{"fingerprint internal", fingerprint.ErrInternal, application.KindInternal},
		{"interrupted", domain.ErrInterrupted, application.KindInterrupted},
		{"context canceled", context.Canceled, application.KindInterrupted},
		{"deadline", context.DeadlineExceeded, application.KindInternetConnection},
		{"dial failure", dialErr, application.KindInternetConnection},
		{"payment method not found", domain.ErrPaymentMethodNotFound, application.KindPaymentMethodNotFound},
		{"missing credential", domain.ErrMissingCredential, application.KindMissingCredential},
		{"empty list", domain.ErrEmptyPaymentOptions, application.KindEmptyList},
		{"auth error", domain.NewAuthError(domain.AuthSessionsExceeded), application.KindAuthChallenge},
		{"validation", domain.NewInvalidCardNumberError(), application.KindValidation},
		{"unknown", errors.New("boom"), application.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, application.KindOf(tt.err))
		})
	}
}

func TestMapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, application.MapError(nil))
	})

	t.Run("connection failures become internet connection errors", func(t *testing.T) {
		mapped := application.MapError(dialErr)

		procErr, ok := application.IsProcessingError(mapped)
		require.True(t, ok)
		assert.Equal(t, application.KindInternetConnection, procErr.Kind)
		assert.ErrorIs(t, mapped, dialErr)
	})

	t.Run("never wraps twice", func(t *testing.T) {
		once := application.MapError(fingerprint.ErrConnectionFail)
		twice := application.MapError(once)

		assert.Same(t, once, twice)
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		authErr := domain.NewAuthError(domain.AuthInvalidAnswer)
		assert.Same(t, authErr, application.MapError(authErr))
	})

	t.Run("cancellation is not a network error", func(t *testing.T) {
		_, ok := application.IsProcessingError(application.MapError(context.Canceled))
		assert.False(t, ok)
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, application.IsRetryable(dialErr, true))
	assert.False(t, application.IsRetryable(dialErr, false), "tokenization is never retried")
	assert.False(t, application.IsRetryable(domain.NewInvalidCSCError(), true))
}
