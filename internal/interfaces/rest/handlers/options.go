package handlers

import (
	"net/http"

	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
)

func (h *Handlers) ListPaymentOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.module.FetchPaymentOptions(r.Context())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	h.remember(options)

	items := make([]rest.PaymentOption, 0, len(options))
	for _, o := range options {
		items = append(items, rest.ToPaymentOption(o))
	}
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{Success: true, Data: items}, h.logger)
}
