package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

// APIError is a non-2xx answer from the payments or wallet API.
type APIError struct {
	Code       string
	Message    string
	StatusCode int
}

type ErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// walletError turns a recognised wallet error code into a domain.AuthError.
func walletError(err error) error {
	apiErr, ok := IsAPIError(err)
	if !ok {
		return err
	}
	if code, ok := domain.ParseAuthErrorCode(apiErr.Code); ok {
		return domain.NewAuthError(code)
	}
	return err
}

func notFoundAs(err error, target error) error {
	if apiErr, ok := IsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
		return target
	}
	return err
}
