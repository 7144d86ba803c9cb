package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/view"
)

// CatalogSource serves the current catalog; an empty result means the
// renderer falls back to demo data.
type CatalogSource interface {
	Get(ctx context.Context) []domain.Product
}

type CatalogHandler struct {
	catalog CatalogSource
	timeout time.Duration
}

func NewCatalogHandler(catalog CatalogSource, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

// GET /api/v1/catalog
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products := h.catalog.Get(ctx)
	respondJSON(w, http.StatusOK, view.BuildCatalogView(products))
}
