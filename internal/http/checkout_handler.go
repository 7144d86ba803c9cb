package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/payment"
)

type CheckoutHandler struct {
	flow *checkout.Service
}

func NewCheckoutHandler(flow *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{flow: flow}
}

type SessionResponseDTO struct {
	CheckoutID  string `json:"checkout_id"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

type SubmitPaymentRequestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SubmitPaymentResponseDTO struct {
	PaymentMethodID string `json:"payment_method_id"`
	Status          string `json:"status"`
}

type CheckoutStatusDTO struct {
	Status      string `json:"status"`
	CheckoutID  string `json:"checkout_id,omitempty"`
	AmountMinor int64  `json:"amount_minor,omitempty"`
	Currency    string `json:"currency,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	session, err := h.flow.ProceedToCheckout(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		case errors.Is(err, checkout.ErrIllegalTransition):
			respondError(w, http.StatusConflict, "illegal_transition",
				"checkout cannot be opened from the current state")
		default:
			respondError(w, http.StatusBadGateway, "payment_provider_unavailable",
				"failed to prepare payment")
		}
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponseDTO{
		CheckoutID:  session.ID,
		Status:      string(h.flow.Status()),
		AmountMinor: session.AmountMinor,
		Currency:    session.Currency,
	})
}

// POST /api/v1/checkout/payment
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	pmID, err := h.flow.SubmitPayment(r.Context(), req.Name, req.Email)
	if err != nil {
		var provErr *payment.ProviderError
		switch {
		case errors.As(err, &provErr):
			// The provider message reaches the client verbatim.
			respondError(w, http.StatusPaymentRequired, provErr.Code, provErr.Message)
		case errors.Is(err, checkout.ErrSubmissionInProgress):
			respondError(w, http.StatusConflict, "submission_in_progress",
				"a payment submission is already in flight")
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		case errors.Is(err, checkout.ErrIllegalTransition), errors.Is(err, checkout.ErrNoActiveSession):
			respondError(w, http.StatusConflict, "no_active_checkout",
				"no payment-ready checkout session")
		default:
			respondError(w, http.StatusBadGateway, "payment_provider_unavailable",
				"payment provider request failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, SubmitPaymentResponseDTO{
		PaymentMethodID: pmID,
		Status:          string(h.flow.Status()),
	})
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := CheckoutStatusDTO{Status: string(h.flow.Status())}
	if session := h.flow.Session(); session != nil {
		resp.CheckoutID = session.ID
		resp.AmountMinor = session.AmountMinor
		resp.Currency = session.Currency
		resp.LastError = session.LastError
	}
	respondJSON(w, http.StatusOK, resp)
}
