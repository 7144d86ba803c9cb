package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Fetcher is the upstream catalog source. Implementations never return an
// error; an empty slice stands for "nothing usable".
type Fetcher interface {
	FetchCatalog(ctx context.Context) []domain.Product
}

type Service struct {
	fetcher Fetcher
	cache   cache.CatalogCache
	sfg     singleflight.Group // Prevents cache stampede on the backend
}

func NewService(fetcher Fetcher, catalogCache cache.CatalogCache) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   catalogCache,
	}
}

// Get returns the current catalog, serving from cache when possible. Cache
// failures are logged and treated as misses so the cache layer can never
// turn a working fetch into a failure.
func (s *Service) Get(ctx context.Context) []domain.Product {
	v, _, _ := s.sfg.Do("catalog", func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil // catalog is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("catalog cache get error", "error", err) // log cache error but continue
		}

		products = s.fetcher.FetchCatalog(ctx)
		if len(products) == 0 {
			// Nothing worth caching; the renderer falls back to demo data.
			return products, nil
		}

		// set cache
		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, products); errSet != nil {
				slog.Warn("catalog cache set error", "error", errSet)
			}
		}()

		return products, nil
	})

	return v.([]domain.Product)
}
