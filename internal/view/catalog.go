package view

import (
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const placeholderImage = "/placeholder.jpg"

// AddToCartPayload carries the values an add-to-cart action submits. They
// are captured at build time, not a live reference to the catalog record.
type AddToCartPayload struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

type ProductCard struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	SKU        string           `json:"sku"`
	Price      decimal.Decimal  `json:"price"`
	Currency   string           `json:"currency"`
	ImageURL   string           `json:"image_url"`
	ImageLabel string           `json:"image_label,omitempty"`
	AddToCart  AddToCartPayload `json:"add_to_cart"`
}

type CatalogView struct {
	Products []ProductCard `json:"products"`
	Demo     bool          `json:"demo"`
}

// BuildCatalogView projects products into display cards. An empty input
// renders the built-in demo set instead, never an empty panel.
func BuildCatalogView(products []domain.Product) CatalogView {
	demo := false
	if len(products) == 0 {
		products = DemoProducts()
		demo = true
	}

	cards := make([]ProductCard, len(products))
	for i, p := range products {
		imageURL := p.ImageURL
		if imageURL == "" {
			imageURL = placeholderImage
		}
		cards[i] = ProductCard{
			ID:         p.ID,
			Name:       p.Name,
			SKU:        p.SKU,
			Price:      p.Price,
			Currency:   p.Currency,
			ImageURL:   imageURL,
			ImageLabel: p.ImageLabel,
			AddToCart: AddToCartPayload{
				Name:     p.Name,
				Price:    p.Price,
				Currency: p.Currency,
			},
		}
	}

	return CatalogView{Products: cards, Demo: demo}
}
