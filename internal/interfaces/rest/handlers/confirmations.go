package handlers

import (
	"net/http"

	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
)

// StartConfirmation records the confirmation url the merchant backend got
// for a tokenized payment and forwards it to the embedding app.
func (h *Handlers) StartConfirmation(w http.ResponseWriter, r *http.Request) {
	var body rest.ConfirmationRequest
	if err := decode(w, r, &body); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	method, err := body.Method()
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.module.StartConfirmationProcess(body.URL, method); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusAccepted, rest.Envelope{
		Success: true,
		Data:    rest.Confirmation{PaymentMethodType: string(method), Status: rest.ConfirmationPending},
	}, h.logger)
}

func (h *Handlers) FinishConfirmation(w http.ResponseWriter, r *http.Request) {
	method, err := rest.ParseMethod(r.PathValue("method"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.module.ConfirmationFinished(method); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		Success: true,
		Data:    rest.Confirmation{PaymentMethodType: string(method), Status: rest.ConfirmationConfirmed},
	}, h.logger)
}

// Logout forgets the wallet credential of this checkout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.module.Logout(r.Context()); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
