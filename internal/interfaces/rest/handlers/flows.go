package handlers

import (
	"net/http"

	"github.com/DanielPopoola/checkout-tokenization/internal/checkout"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
)

func (h *Handlers) CreateFlow(w http.ResponseWriter, r *http.Request) {
	var body rest.CreateFlowRequest
	if err := decode(w, r, &body); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	req, err := body.TokenizeRequest()
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	option, err := h.option(body.OptionID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	flow, err := h.module.Tokenize(r.Context(), req, checkout.TokenizeOptions{
		Option:            option,
		SavePaymentMethod: body.SavePaymentMethod,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	w.Header().Set("Location", "/v1/flows/"+flow.ID())
	h.writeFlow(w, http.StatusAccepted, flow)
}

func (h *Handlers) GetFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := h.flow(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	h.writeFlow(w, http.StatusOK, flow)
}

// AbandonFlow interrupts the flow. Finished flows are returned unchanged.
func (h *Handlers) AbandonFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := h.flow(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	flow.Abandon()
	h.writeFlow(w, http.StatusOK, flow)
}

func (h *Handlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	flow, err := h.flow(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var body rest.AnswerRequest
	if err := decode(w, r, &body); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := flow.SubmitAnswer(r.Context(), body.Answer); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	h.writeFlow(w, http.StatusOK, flow)
}

func (h *Handlers) ResendCode(w http.ResponseWriter, r *http.Request) {
	flow, err := h.flow(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	if err := flow.ResendCode(r.Context()); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	h.writeFlow(w, http.StatusOK, flow)
}

func (h *Handlers) writeFlow(w http.ResponseWriter, status int, flow *tokenization.Flow) {
	rest.WriteJSON(w, status, rest.Envelope{Success: true, Data: rest.ToFlow(flow.Snapshot())}, h.logger)
}
