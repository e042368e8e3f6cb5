package enums

// CheckoutOutcome is the result of one checkout attempt.
type CheckoutOutcome string

const (
	CheckoutOutcomeEmptyCart CheckoutOutcome = "empty_cart"
	CheckoutOutcomeDropped   CheckoutOutcome = "dropped"
	CheckoutOutcomeCancelled CheckoutOutcome = "cancelled"
	CheckoutOutcomeSubmitted CheckoutOutcome = "submitted"
	CheckoutOutcomeFailed    CheckoutOutcome = "failed"
)

// String implements fmt.Stringer.
func (o CheckoutOutcome) String() string {
	return string(o)
}

// State maps an outcome onto the terminal checkout state it leaves behind.
func (o CheckoutOutcome) State() CheckoutState {
	switch o {
	case CheckoutOutcomeSubmitted:
		return CheckoutStateSucceeded
	case CheckoutOutcomeFailed:
		return CheckoutStateFailed
	}
	return CheckoutStateIdle
}
