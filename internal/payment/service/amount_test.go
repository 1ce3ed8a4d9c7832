package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		wantValid bool
	}{
		{name: "one cent", amount: 1, wantValid: true},
		{name: "typical amount", amount: 1000, wantValid: true},
		{name: "upper bound", amount: domain.MaxPaymentAmountCents, wantValid: true},
		{name: "zero", amount: 0, wantValid: false},
		{name: "negative", amount: -100, wantValid: false},
		{name: "fractional cents", amount: 10.5, wantValid: false},
		{name: "above upper bound", amount: domain.MaxPaymentAmountCents + 1, wantValid: false},
		{name: "just past ten million dollars", amount: 10_000_001 * 100, wantValid: false},
		{name: "NaN", amount: math.NaN(), wantValid: false},
		{name: "positive infinity", amount: math.Inf(1), wantValid: false},
		{name: "negative infinity", amount: math.Inf(-1), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePaymentAmount(tt.amount)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.Empty(t, got.Error)
			} else {
				assert.NotEmpty(t, got.Error)
			}
		})
	}

	t.Run("check order: negative beats fractional", func(t *testing.T) {
		got := ValidatePaymentAmount(-10.5)
		assert.Equal(t, "Amount cannot be negative", got.Error)
	})

	t.Run("NaN reported as not a valid number", func(t *testing.T) {
		got := ValidatePaymentAmount(math.NaN())
		assert.Equal(t, "Amount must be a valid number", got.Error)
	})
}
