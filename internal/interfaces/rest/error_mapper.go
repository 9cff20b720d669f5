package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/checkout"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
)

var (
	ErrFlowNotFound   = errors.New("flow not found")
	ErrOptionNotFound = errors.New("payment option not found")
	ErrBadRequestBody = errors.New("malformed request body")
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError renders err with the status its kind maps to.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "code", code)
	}

	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	}, logger)
}

func WriteJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrFlowNotFound), errors.Is(err, ErrOptionNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrBadRequestBody):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, checkout.ErrEmptyConfirmationURL):
		return http.StatusBadRequest, "EMPTY_CONFIRMATION_URL"
	case errors.Is(err, tokenization.ErrNotAwaitingAuth),
		errors.Is(err, tokenization.ErrAlreadyStarted):
		return http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, checkout.ErrNoConfirmationPending):
		return http.StatusConflict, "NO_CONFIRMATION_PENDING"
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusBadRequest, domainErr.Code
	}

	kind := application.KindOf(err)
	switch kind {
	case application.KindValidation:
		return http.StatusBadRequest, string(kind)
	case application.KindAuthChallenge:
		return http.StatusUnprocessableEntity, authCode(err)
	case application.KindPaymentMethodNotFound, application.KindEmptyList:
		return http.StatusNotFound, string(kind)
	case application.KindMissingCredential:
		return http.StatusUnauthorized, string(kind)
	case application.KindInterrupted:
		return http.StatusConflict, string(kind)
	case application.KindInternetConnection:
		return http.StatusBadGateway, string(kind)
	default:
		return http.StatusInternalServerError, string(kind)
	}
}

func authCode(err error) string {
	if authErr, ok := domain.IsAuthError(err); ok {
		return string(authErr.Code)
	}
	return string(application.KindAuthChallenge)
}
