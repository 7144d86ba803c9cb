package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one cart entry. Prices are captured at add time, not live
// references to catalog records. Quantity always starts at 1; adding the
// same product again appends a new line.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Currency  string
	Quantity  int
	AddedAt   time.Time
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartSnapshot represents the full cart state at checkout time. Version is
// the store's mutation counter at capture time, used to detect a stale
// payment session.
type CartSnapshot struct {
	Items      []LineItem
	Total      decimal.Decimal
	Currency   string
	Version    int64
	CapturedAt time.Time
}

// MinorUnits converts a decimal amount to the smallest currency denomination
// (cents for 2-decimal currencies), as required by the payment provider.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
