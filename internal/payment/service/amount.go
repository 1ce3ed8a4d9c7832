package service

import (
	"math"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// ValidatePaymentAmount validates a monetary amount expressed in integer cents.
//
// Checks run in a fixed order and the first failure wins: the amount must be a
// finite number, non-negative, strictly positive, at most
// domain.MaxPaymentAmountCents, and a whole number of cents. The input is a
// float64 so that non-numeric garbage (NaN, infinities) and fractional cents
// coming from JSON payloads are rejected here instead of silently truncated.
//
// Failures are routine control flow, so the result is a value object rather
// than an error.
func ValidatePaymentAmount(amount float64) domain.AmountValidation {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.InvalidAmount("Amount must be a valid number")
	}
	if amount < 0 {
		return domain.InvalidAmount("Amount cannot be negative")
	}
	if amount == 0 {
		return domain.InvalidAmount("Amount must be greater than zero")
	}
	if amount > domain.MaxPaymentAmountCents {
		return domain.InvalidAmount("Amount exceeds maximum allowed")
	}
	if amount != math.Trunc(amount) {
		return domain.InvalidAmount("Amount must be a whole number of cents")
	}
	return domain.ValidAmount()
}
