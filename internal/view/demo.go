package view

import (
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// demoProducts is the built-in fallback set shown whenever the catalog
// fetch yields nothing, so the storefront is never visually empty. Values
// are literal; the add-to-cart payloads carry them as-is.
var demoProducts = []domain.Product{
	{
		ID:         "demo-1",
		Name:       "Radiant Tee",
		SKU:        "WS12",
		Price:      decimal.New(2200, -2),
		Currency:   "USD",
		ImageURL:   "/media/demo/radiant-tee.jpg",
		ImageLabel: "Radiant Tee",
	},
	{
		ID:         "demo-2",
		Name:       "Crown Summit Backpack",
		SKU:        "24-MB03",
		Price:      decimal.New(3800, -2),
		Currency:   "USD",
		ImageURL:   "/media/demo/crown-summit-backpack.jpg",
		ImageLabel: "Crown Summit Backpack",
	},
	{
		ID:         "demo-3",
		Name:       "Aim Analog Watch",
		SKU:        "24-MG04",
		Price:      decimal.New(4500, -2),
		Currency:   "USD",
		ImageURL:   "/media/demo/aim-analog-watch.jpg",
		ImageLabel: "Aim Analog Watch",
	},
}

// DemoProducts returns a copy of the fallback set.
func DemoProducts() []domain.Product {
	products := make([]domain.Product, len(demoProducts))
	copy(products, demoProducts)
	return products
}
