package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrIllegalTransition    = errors.New("illegal transition of checkout status")
	ErrSubmissionInProgress = errors.New("payment submission already in progress")
	ErrNoActiveSession      = errors.New("no active checkout session")
)
