package domain

type CheckoutStatus string

const (
	CheckoutStatusBrowsing          CheckoutStatus = "BROWSING"
	CheckoutStatusCartReview        CheckoutStatus = "CART_REVIEW"
	CheckoutStatusCheckoutOpen      CheckoutStatus = "CHECKOUT_OPEN"
	CheckoutStatusPaymentReady      CheckoutStatus = "PAYMENT_READY"
	CheckoutStatusPaymentSubmitting CheckoutStatus = "PAYMENT_SUBMITTING"
	CheckoutStatusPaymentSucceeded  CheckoutStatus = "PAYMENT_SUCCEEDED"
	CheckoutStatusPaymentFailed     CheckoutStatus = "PAYMENT_FAILED"
)

// transitions is the allowed edge set of the checkout flow. PaymentFailed is
// not terminal: it loops back to PaymentReady so the user may resubmit.
var transitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusBrowsing:          {CheckoutStatusCartReview},
	CheckoutStatusCartReview:        {CheckoutStatusCheckoutOpen, CheckoutStatusBrowsing},
	CheckoutStatusCheckoutOpen:      {CheckoutStatusPaymentReady},
	CheckoutStatusPaymentReady:      {CheckoutStatusPaymentSubmitting},
	CheckoutStatusPaymentSubmitting: {CheckoutStatusPaymentSucceeded, CheckoutStatusPaymentFailed},
	CheckoutStatusPaymentFailed:     {CheckoutStatusPaymentReady},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusPaymentSucceeded
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
