package view

import (
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogView_EmptyInput_RendersExactlyDemoSet(t *testing.T) {
	catalogView := BuildCatalogView(nil)

	assert.True(t, catalogView.Demo)
	require.Len(t, catalogView.Products, len(demoProducts))
	for i, card := range catalogView.Products {
		assert.Equal(t, demoProducts[i].Name, card.Name)
		assert.Equal(t, demoProducts[i].SKU, card.SKU)
		assert.True(t, card.Price.Equal(demoProducts[i].Price))
		assert.Equal(t, demoProducts[i].Currency, card.Currency)
		// The affordance carries the literal demo values.
		assert.Equal(t, demoProducts[i].Name, card.AddToCart.Name)
		assert.True(t, card.AddToCart.Price.Equal(demoProducts[i].Price))
	}
}

func TestBuildCatalogView_OneCardPerProduct(t *testing.T) {
	products := []domain.Product{
		{
			ID:       "101",
			Name:     "Laptop",
			SKU:      "LT-01",
			Price:    decimal.RequireFromString("1299.99"),
			Currency: "USD",
			ImageURL: "https://example.com/laptop.jpg",
		},
		{
			ID:       "102",
			Name:     "Mouse",
			SKU:      "MS-01",
			Price:    decimal.RequireFromString("29.99"),
			Currency: "USD",
		},
	}

	catalogView := BuildCatalogView(products)

	assert.False(t, catalogView.Demo)
	require.Len(t, catalogView.Products, 2)
	assert.Equal(t, "Laptop", catalogView.Products[0].Name)
	assert.Equal(t, "https://example.com/laptop.jpg", catalogView.Products[0].ImageURL)

	// Missing image falls back to the placeholder.
	assert.Equal(t, placeholderImage, catalogView.Products[1].ImageURL)
}

func TestBuildCatalogView_PayloadCapturedAtBuildTime(t *testing.T) {
	products := []domain.Product{
		{ID: "101", Name: "Laptop", Price: decimal.RequireFromString("1299.99"), Currency: "USD"},
	}

	catalogView := BuildCatalogView(products)

	// Mutating the source record must not reach the built card.
	products[0].Name = "changed"
	products[0].Price = decimal.Zero

	card := catalogView.Products[0]
	assert.Equal(t, "Laptop", card.AddToCart.Name)
	assert.True(t, card.AddToCart.Price.Equal(decimal.RequireFromString("1299.99")))
}

func TestDemoProducts_ReturnsCopy(t *testing.T) {
	first := DemoProducts()
	first[0].Name = "mutated"

	second := DemoProducts()
	assert.Equal(t, "Radiant Tee", second[0].Name)
}
