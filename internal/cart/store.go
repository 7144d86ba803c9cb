package cart

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when an item's currency differs from the
// currency already present in the cart. The cart never converts amounts.
var ErrCurrencyMismatch = errors.New("item currency does not match cart currency")

// Event describes a completed cart mutation. Listeners receive it after the
// store lock is released.
type Event struct {
	Version int64
	Count   int
	Total   decimal.Decimal
}

type Listener func(Event)

// Store holds the cart for the current storefront session. State lives only
// in memory and is lost on restart. It is injected into the view builders
// and the checkout flow rather than held as package state.
type Store struct {
	mu        sync.RWMutex
	items     []domain.LineItem
	currency  string
	version   int64
	listeners []Listener
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a listener invoked after every mutation.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Add appends a new line with quantity 1. Adding the same product twice
// appends a second line; there is no quantity-increment path.
func (s *Store) Add(name string, price decimal.Decimal, currency string) error {
	s.mu.Lock()
	if s.currency != "" && s.currency != currency {
		s.mu.Unlock()
		return ErrCurrencyMismatch
	}
	s.items = append(s.items, domain.LineItem{
		Name:      name,
		UnitPrice: price,
		Currency:  currency,
		Quantity:  1,
		AddedAt:   time.Now(),
	})
	s.currency = currency
	s.version++
	ev := s.eventLocked()
	s.mu.Unlock()

	s.notify(ev)
	return nil
}

// Remove deletes the line at index. An out-of-range index is a no-op and
// reports false.
func (s *Store) Remove(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		slog.Warn("cart remove ignored, index out of range", "index", index)
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	if len(s.items) == 0 {
		s.currency = ""
	}
	s.version++
	ev := s.eventLocked()
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.currency = ""
	s.version++
	ev := s.eventLocked()
	s.mu.Unlock()

	s.notify(ev)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is derived from the current lines on every call, never maintained
// incrementally, so it always equals the sum of price*quantity.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalLocked()
}

// Count is the sum of quantities over all lines (the badge number).
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked()
}

// Currency is the cart-level currency tag, empty while the cart is empty.
func (s *Store) Currency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// Version increments on every mutation. The checkout flow compares it
// against the version captured at snapshot time to detect a stale payment
// session.
func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot captures the full cart state for checkout.
func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return domain.CartSnapshot{
		Items:      items,
		Total:      s.totalLocked(),
		Currency:   s.currency,
		Version:    s.version,
		CapturedAt: time.Now(),
	}
}

func (s *Store) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) countLocked() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) eventLocked() Event {
	return Event{
		Version: s.version,
		Count:   s.countLocked(),
		Total:   s.totalLocked(),
	}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}
