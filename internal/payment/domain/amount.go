package domain

// MaxPaymentAmountCents is the single documented upper bound for a payment
// amount: 1,000,000,000 cents, a $10,000,000 ceiling. Amounts above this are
// rejected.
const MaxPaymentAmountCents = 10_000_000 * 100

// AmountValidation is the value-object result of validating a payment amount.
// Amount validation failures are routine control flow, so they are returned
// as values rather than errors.
type AmountValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidAmount returns a passing validation result.
func ValidAmount() AmountValidation {
	return AmountValidation{Valid: true}
}

// InvalidAmount returns a failing validation result with the given reason.
func InvalidAmount(reason string) AmountValidation {
	return AmountValidation{Valid: false, Error: reason}
}
