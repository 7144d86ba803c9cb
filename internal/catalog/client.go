package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// productsQuery is the single read query issued against the commerce
// backend. The response is treated as an opaque contract: the client only
// consumes data.products.items (or data.data.products.items, depending on
// the backend's client wrapper).
const productsQuery = `
	query {
		products(search: "", pageSize: %d) {
			items {
				id
				name
				sku
				price_range {
					minimum_price {
						regular_price {
							value
							currency
						}
					}
				}
				image {
					url
					label
				}
			}
		}
	}
`

type Client struct {
	endpoint string
	pageSize int
	httpc    *http.Client
}

func NewClient(endpoint string, pageSize int, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		pageSize: pageSize,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type gqlRegularPrice struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type gqlProduct struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	SKU        string      `json:"sku"`
	PriceRange struct {
		MinimumPrice struct {
			RegularPrice gqlRegularPrice `json:"regular_price"`
		} `json:"minimum_price"`
	} `json:"price_range"`
	Image *struct {
		URL   string `json:"url"`
		Label string `json:"label"`
	} `json:"image"`
}

type gqlProducts struct {
	Items []gqlProduct `json:"items"`
}

type gqlData struct {
	Products *gqlProducts `json:"products"`
	Data     *struct {
		Products *gqlProducts `json:"products"`
	} `json:"data"`
}

type gqlResponse struct {
	Data *gqlData `json:"data"`
}

// FetchCatalog issues the catalog query and normalizes the response. It
// never fails its caller: any transport error, non-2xx status, or malformed
// shape is logged and yields an empty slice, which callers must treat as
// "show the fallback", not as an error.
func (c *Client) FetchCatalog(ctx context.Context) []domain.Product {
	query := fmt.Sprintf(productsQuery, c.pageSize)
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		slog.Warn("catalog query marshal failed", "error", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Warn("catalog request build failed", "error", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.Warn("catalog fetch failed", "endpoint", c.endpoint, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("catalog fetch returned unexpected status", "status", resp.StatusCode)
		return nil
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		slog.Warn("catalog response decode failed", "error", err)
		return nil
	}

	items := extractItems(&envelope)
	if items == nil {
		slog.Warn("catalog response missing products payload")
		return nil
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		p := domain.Product{
			ID:       item.ID.String(),
			Name:     item.Name,
			SKU:      item.SKU,
			Price:    decimal.NewFromFloat(item.PriceRange.MinimumPrice.RegularPrice.Value),
			Currency: item.PriceRange.MinimumPrice.RegularPrice.Currency,
		}
		if item.Image != nil {
			p.ImageURL = item.Image.URL
			p.ImageLabel = item.Image.Label
		}
		products = append(products, p)
	}
	return products
}

// extractItems handles both response nestings seen in the wild.
func extractItems(envelope *gqlResponse) []gqlProduct {
	if envelope.Data == nil {
		return nil
	}
	if envelope.Data.Products != nil {
		return envelope.Data.Products.Items
	}
	if envelope.Data.Data != nil && envelope.Data.Data.Products != nil {
		return envelope.Data.Data.Products.Items
	}
	return nil
}
