package checkout

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentGateway is the slice of the payment adapter the checkout flow uses.
type PaymentGateway interface {
	CreateElement(ctx context.Context, amountMinor int64, currency string) (*payment.Element, error)
	CreatePaymentMethod(ctx context.Context, element *payment.Element, billing payment.BillingDetails) (string, error)
}

// Session is one checkout attempt: the cart snapshot taken at open time and
// the payment element built from it.
type Session struct {
	ID              string
	Amount          decimal.Decimal
	AmountMinor     int64
	Currency        string
	CartVersion     int64
	Element         *payment.Element
	PaymentMethodID string
	LastError       string
}

// Service drives the transition from browsing to payment capture. It owns
// the checkout state machine; all transitions go through the allowed-edge
// table in the domain package.
//
// The payment-method id surfaced on success is not forwarded anywhere: the
// order-placement call does not exist yet.
type Service struct {
	mu       sync.Mutex
	cart     *cart.Store
	payments PaymentGateway

	status  domain.CheckoutStatus
	session *Session

	// stale marks the payment element as out of date with the cart. Set by
	// the cart change listener, cleared on rebuild.
	stale bool
}

func NewService(cartStore *cart.Store, payments PaymentGateway) *Service {
	s := &Service{
		cart:     cartStore,
		payments: payments,
		status:   domain.CheckoutStatusBrowsing,
	}
	cartStore.Subscribe(s.onCartChanged)
	return s
}

// onCartChanged invalidates the payment element when the cart mutates after
// the element was built. The rebuild happens lazily on the next submission.
func (s *Service) onCartChanged(cart.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == domain.CheckoutStatusPaymentReady {
		s.stale = true
	}
}

func (s *Service) Status() domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Session returns a copy of the current checkout session, or nil when none
// is active.
func (s *Service) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// OpenCartReview is triggered by opening the cart view. There is no guard;
// from states where the transition is not allowed it leaves the flow alone.
func (s *Service) OpenCartReview() domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.CanTransitionTo(s.status, domain.CheckoutStatusCartReview) {
		s.setStatusLocked(domain.CheckoutStatusCartReview)
	}
	return s.status
}

// ProceedToCheckout validates the cart, snapshots it and builds the payment
// element. On an empty cart the flow stays in CartReview and the user gets
// a blocking error. On success the flow lands in PaymentReady.
func (s *Service) ProceedToCheckout(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.CanTransitionTo(s.status, domain.CheckoutStatusCheckoutOpen) {
		return nil, ErrIllegalTransition
	}

	snapshot := s.cart.Snapshot()
	if len(snapshot.Items) == 0 || !snapshot.Total.IsPositive() {
		return nil, ErrEmptyCart // state stays CartReview
	}

	s.setStatusLocked(domain.CheckoutStatusCheckoutOpen)

	session, err := s.buildSessionLocked(ctx, snapshot)
	if err != nil {
		// Element creation failed; fall back so the user can retry the
		// whole checkout step.
		s.setStatusLocked(domain.CheckoutStatusCartReview)
		return nil, err
	}

	s.session = session
	s.stale = false
	s.setStatusLocked(domain.CheckoutStatusPaymentReady)

	copied := *session
	return &copied, nil
}

// SubmitPayment tokenizes the payment method for the active session. While a
// submission is in flight further submits are refused; this is the only
// concurrency guard the flow needs. A provider failure re-arms the session
// at PaymentReady so the user may retry manually.
func (s *Service) SubmitPayment(ctx context.Context, billingName, billingEmail string) (string, error) {
	s.mu.Lock()

	switch s.status {
	case domain.CheckoutStatusPaymentSubmitting:
		s.mu.Unlock()
		return "", ErrSubmissionInProgress
	case domain.CheckoutStatusPaymentReady:
		// proceed
	default:
		s.mu.Unlock()
		return "", ErrIllegalTransition
	}

	if s.session == nil {
		s.mu.Unlock()
		return "", ErrNoActiveSession
	}

	// The cart may have changed since the element was built. The element is
	// scoped to one amount, so rebuild it from a fresh snapshot.
	if s.stale || s.session.CartVersion != s.cart.Version() {
		snapshot := s.cart.Snapshot()
		if len(snapshot.Items) == 0 || !snapshot.Total.IsPositive() {
			s.session = nil
			s.setStatusLocked(domain.CheckoutStatusCartReview)
			s.mu.Unlock()
			return "", ErrEmptyCart
		}

		rebuilt, err := s.buildSessionLocked(ctx, snapshot)
		if err != nil {
			s.mu.Unlock()
			return "", err
		}
		rebuilt.ID = s.session.ID
		s.session = rebuilt
		s.stale = false
		slog.Info("payment element rebuilt after cart change",
			"session_id", rebuilt.ID, "amount_minor", rebuilt.AmountMinor)
	}

	s.setStatusLocked(domain.CheckoutStatusPaymentSubmitting)
	element := s.session.Element
	s.mu.Unlock()

	// Provider call happens outside the lock; the Submitting status keeps
	// concurrent submits out.
	pmID, err := s.payments.CreatePaymentMethod(ctx, element, payment.BillingDetails{
		Name:  billingName,
		Email: billingEmail,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.setStatusLocked(domain.CheckoutStatusPaymentFailed)
		s.session.LastError = err.Error()
		s.setStatusLocked(domain.CheckoutStatusPaymentReady) // submit re-enabled for retry
		return "", err
	}

	s.session.PaymentMethodID = pmID
	s.session.LastError = ""
	s.setStatusLocked(domain.CheckoutStatusPaymentSucceeded)
	return pmID, nil
}

// Reset returns the flow to Browsing, the page-reload analog. The cart is
// left untouched.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = domain.CheckoutStatusBrowsing
	s.session = nil
	s.stale = false
}

func (s *Service) buildSessionLocked(ctx context.Context, snapshot domain.CartSnapshot) (*Session, error) {
	amountMinor := domain.MinorUnits(snapshot.Total)
	currency := strings.ToLower(snapshot.Currency)

	element, err := s.payments.CreateElement(ctx, amountMinor, currency)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:          uuid.New().String(),
		Amount:      snapshot.Total,
		AmountMinor: amountMinor,
		Currency:    currency,
		CartVersion: snapshot.Version,
		Element:     element,
	}, nil
}

func (s *Service) setStatusLocked(to domain.CheckoutStatus) {
	slog.Debug("checkout status transition", "from", s.status, "to", to)
	s.status = to
}
