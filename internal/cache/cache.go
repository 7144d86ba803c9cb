package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

// CatalogCache holds the most recent catalog projection so concurrent page
// loads do not all hit the commerce backend. It is an optimization only:
// callers must treat any cache failure as a miss.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// Noop disables caching; used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context) ([]domain.Product, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, []domain.Product) error   { return nil }
func (Noop) Delete(context.Context) error                  { return nil }
