package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/DanielPopoola/checkout-tokenization/internal/checkout"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
)

// Module is the checkout surface the handlers drive.
type Module interface {
	FetchPaymentOptions(ctx context.Context) ([]domain.PaymentOption, error)
	Tokenize(ctx context.Context, req domain.TokenizeRequest, opts checkout.TokenizeOptions) (*tokenization.Flow, error)
	Flow(id string) (*tokenization.Flow, bool)
	StartConfirmationProcess(confirmationURL string, method domain.PaymentMethodType) error
	ConfirmationFinished(method domain.PaymentMethodType) error
	Logout(ctx context.Context) error
}

type Handlers struct {
	module Module
	logger *slog.Logger

	mu      sync.RWMutex
	options map[string]domain.PaymentOption
}

func NewHandlers(module Module, logger *slog.Logger) *Handlers {
	return &Handlers{
		module:  module,
		logger:  logger,
		options: make(map[string]domain.PaymentOption),
	}
}

// Register mounts the API routes on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/payment-options", h.ListPaymentOptions)
	mux.HandleFunc("POST /v1/flows", h.CreateFlow)
	mux.HandleFunc("GET /v1/flows/{id}", h.GetFlow)
	mux.HandleFunc("DELETE /v1/flows/{id}", h.AbandonFlow)
	mux.HandleFunc("POST /v1/flows/{id}/answer", h.SubmitAnswer)
	mux.HandleFunc("POST /v1/flows/{id}/resend", h.ResendCode)
	mux.HandleFunc("POST /v1/confirmations", h.StartConfirmation)
	mux.HandleFunc("POST /v1/confirmations/{method}/finish", h.FinishConfirmation)
	mux.HandleFunc("POST /v1/logout", h.Logout)
}

func (h *Handlers) flow(r *http.Request) (*tokenization.Flow, error) {
	id := r.PathValue("id")
	flow, ok := h.module.Flow(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rest.ErrFlowNotFound, id)
	}
	return flow, nil
}

func (h *Handlers) option(id string) (*domain.PaymentOption, error) {
	if id == "" {
		return nil, nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	option, ok := h.options[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", rest.ErrOptionNotFound, id)
	}
	return &option, nil
}

func (h *Handlers) remember(options []domain.PaymentOption) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.options)
	for _, o := range options {
		h.options[o.ID] = o
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", rest.ErrBadRequestBody, err)
	}
	return nil
}
