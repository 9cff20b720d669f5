package fingerprint

import (
	"errors"

	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

var (
	ErrInvalidConfiguration = errors.New("fingerprint provider is not configured")
	ErrConnectionFail       = errors.New("fingerprint connection failed")
	ErrInternal             = errors.New("fingerprint internal error")
	ErrInterrupted          = domain.ErrInterrupted
)
