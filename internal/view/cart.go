package view

import (
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Badge is the cart indicator: the sum of quantities, hidden at zero.
type Badge struct {
	Count   int  `json:"count"`
	Visible bool `json:"visible"`
}

type CartRow struct {
	Index     int             `json:"index"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Badge    Badge           `json:"badge"`
	Items    []CartRow       `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency,omitempty"`
}

// BuildCartView rebuilds the whole cart surface from a snapshot. There is
// no incremental diffing: the view is always a pure function of store state.
func BuildCartView(snapshot domain.CartSnapshot) CartView {
	count := 0
	rows := make([]CartRow, len(snapshot.Items))
	for i, item := range snapshot.Items {
		count += item.Quantity
		rows[i] = CartRow{
			Index:     i,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		}
	}

	return CartView{
		Badge:    Badge{Count: count, Visible: count > 0},
		Items:    rows,
		Total:    snapshot.Total,
		Currency: snapshot.Currency,
	}
}
