package service

import (
	"context"
	"strings"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// brandPattern associates a card brand with its leading-digit prefixes.
type brandPattern struct {
	brand    string
	prefixes []string
}

// brandPatterns is the ordered brand detection table. Order matters: some
// prefixes would otherwise be ambiguous, so the first match wins and this
// priority must be preserved exactly.
var brandPatterns = []brandPattern{
	{brand: "visa", prefixes: []string{"4"}},
	{brand: "mastercard", prefixes: []string{"51", "52", "53", "54", "55", "22", "23", "24", "25", "26", "27"}},
	{brand: "amex", prefixes: []string{"34", "37"}},
	{brand: "discover", prefixes: []string{"6011", "65"}},
	{brand: "diners", prefixes: []string{"30", "36", "38", "39"}},
	{brand: "jcb", prefixes: []string{"35"}},
	{brand: "unionpay", prefixes: []string{"62"}},
}

// MaskCardNumber produces the display form of a card number.
// All non-digit characters are stripped first; if fewer than 4 digits remain
// the fully-masked fallback is returned, otherwise only the last 4 digits
// survive behind the bullet mask.
func MaskCardNumber(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) < 4 {
		return domain.MaskedFallback
	}
	return "•••• •••• •••• " + digits[len(digits)-4:]
}

// DetectCardBrand identifies the card brand from its leading digits.
// Returns "unknown" when no pattern matches.
func DetectCardBrand(number string) string {
	digits := stripNonDigits(number)
	for _, pattern := range brandPatterns {
		for _, prefix := range pattern.prefixes {
			if strings.HasPrefix(digits, prefix) {
				return pattern.brand
			}
		}
	}
	return "unknown"
}

// CardCodec derives storage-eligible card summaries from untrusted input.
type CardCodec struct {
	sink metrics.DiagnosticsSink
}

// NewCardCodec creates a card codec reporting to the given diagnostics sink.
func NewCardCodec(sink metrics.DiagnosticsSink) *CardCodec {
	return &CardCodec{sink: sink}
}

// ExtractSafeCardData computes a SafeCardData summary from partial card input.
//
// It never fails: last4 comes from the explicit field when present, else from
// the cleaned number, else the masked fallback; brand comes from the explicit
// field or brand detection; expiry defaults to zero. Any internal panic is
// recovered, reported to the diagnostics sink, and converted into the
// fully-defaulted summary. The result never carries the raw PAN or CVC.
func (c *CardCodec) ExtractSafeCardData(ctx context.Context, input domain.CardInput) (safe domain.SafeCardData) {
	defer func() {
		if r := recover(); r != nil {
			c.sink.RecordValidationError(ctx, "card_codec", "extract_safe_card_data", "internal_error")
			safe = domain.DefaultSafeCardData()
		}
	}()

	last4 := strings.TrimSpace(input.Last4)
	if last4 == "" {
		digits := stripNonDigits(input.Number)
		if len(digits) >= 4 {
			last4 = digits[len(digits)-4:]
		} else {
			last4 = domain.MaskedFallback
		}
	}

	brand := strings.TrimSpace(input.Brand)
	if brand == "" {
		brand = DetectCardBrand(input.Number)
	}

	safe = domain.SafeCardData{
		Last4:        last4,
		Brand:        brand,
		ExpMonth:     input.ExpMonth,
		ExpYear:      input.ExpYear,
		MaskedNumber: MaskCardNumber(input.Number),
	}

	c.sink.RecordPatternSuccess(ctx, "card_codec", "extract_safe_card_data")
	return safe
}

// stripNonDigits removes every non-digit rune from s.
func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
