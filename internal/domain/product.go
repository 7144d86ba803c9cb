package domain

import "github.com/shopspring/decimal"

// Product is a catalog record as returned by the commerce backend.
// Read-only: fetched, projected into the storefront, discarded on the next fetch.
type Product struct {
	ID         string
	Name       string
	SKU        string
	Price      decimal.Decimal
	Currency   string
	ImageURL   string
	ImageLabel string
}
