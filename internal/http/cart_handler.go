package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	store *cart.Store
	flow  *checkout.Service
}

func NewCartHandler(store *cart.Store, flow *checkout.Service) *CartHandler {
	return &CartHandler{
		store: store,
		flow:  flow,
	}
}

type AddItemRequestDTO struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// GET /api/v1/cart
// Opening the cart view also drives the Browsing -> CartReview transition.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.flow.OpenCartReview()
	respondJSON(w, http.StatusOK, view.BuildCartView(h.store.Snapshot()))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return
	}
	if !req.Price.IsPositive() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be positive")
		return
	}
	if len(req.Currency) != 3 {
		respondError(w, http.StatusBadRequest, "invalid_currency", "currency must be a 3-letter ISO code")
		return
	}

	if err := h.store.Add(req.Name, req.Price, req.Currency); err != nil {
		slog.Warn("cart add rejected",
			"request_id", getRequestID(r.Context()),
			"name", req.Name,
			"error", err)
		if errors.Is(err, cart.ErrCurrencyMismatch) {
			respondError(w, http.StatusConflict, "currency_mismatch",
				"item currency does not match cart currency")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, view.BuildCartView(h.store.Snapshot()))
}

// DELETE /api/v1/cart/items/{index}
// An out-of-range index is a no-op by design; the response is the current
// cart either way.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	indexStr := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return
	}

	h.store.Remove(index)
	respondJSON(w, http.StatusOK, view.BuildCartView(h.store.Snapshot()))
}
