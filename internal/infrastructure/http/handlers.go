package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rdcosta-dev/paysplit-go/internal/application/engine"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
)

// PaymentHandler is a thin adapter over the engine's read/write interface.
// The caller identity comes from the X-Caller-Id header; authenticating it
// is a collaborator concern.
type PaymentHandler struct {
	Engine *engine.Engine
}

type CreatePaymentRequest struct {
	Recipient   string `json:"recipient"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type UpdateFeeRequest struct {
	Bps int64 `json:"bps"`
}

type UpdateFeeRecipientRequest struct {
	Recipient string `json:"recipient"`
}

func caller(r *http.Request) string {
	return r.Header.Get("X-Caller-Id")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.Engine.CreatePayment(r.Context(), caller(r), req.Recipient, req.Description, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	if err := h.Engine.RefundPayment(r.Context(), caller(r), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	if err := h.Engine.CancelPayment(r.Context(), caller(r), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	p, err := h.Engine.GetPayment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Engine.GetUserPayments(chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	writeJSON(w, http.StatusOK, map[string][]int64{"ids": ids})
}

func (h *PaymentHandler) GetPaymentCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Engine.GetPaymentCount()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *PaymentHandler) GetFee(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"bps":       h.Engine.GetFeeBps(),
		"recipient": h.Engine.GetFeeRecipient(),
	})
}

func (h *PaymentHandler) UpdateFee(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Engine.UpdateFee(caller(r), req.Bps); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) UpdateFeeRecipient(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeeRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Engine.UpdateFeeRecipient(caller(r), req.Recipient); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) EmergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	amount, err := h.Engine.EmergencyWithdraw(r.Context(), caller(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"amount": amount})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, payment.ErrInvalidRecipient),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, engine.ErrInvalidFee):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, payment.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, payment.ErrInvalidTransition),
		errors.Is(err, engine.ErrNoBalance):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrTransferFailed):
		status = http.StatusBadGateway
	}

	http.Error(w, err.Error(), status)
}
