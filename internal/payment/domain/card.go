package domain

// MaskedFallback is the fully-masked card number representation returned when
// fewer than four digits are available.
const MaskedFallback = "****"

// SafeCardData is the storage-eligible summary of a payment card.
//
// Invariant: it never contains a raw PAN or CVC and is always fully populated,
// falling back to conservative defaults when built from partial or garbage
// input. It is the only card representation that may be persisted or logged.
type SafeCardData struct {
	Last4        string `json:"last4"`
	Brand        string `json:"brand"`
	ExpMonth     int    `json:"expMonth"`
	ExpYear      int    `json:"expYear"`
	MaskedNumber string `json:"maskedNumber"`
}

// DefaultSafeCardData returns the fully-defaulted summary used when card data
// extraction fails internally. Extraction never propagates errors to callers.
func DefaultSafeCardData() SafeCardData {
	return SafeCardData{
		Last4:        MaskedFallback,
		Brand:        "unknown",
		ExpMonth:     0,
		ExpYear:      0,
		MaskedNumber: "•••• •••• •••• ****",
	}
}

// CardInput is the partial, untrusted card data accepted by extraction.
// Fields mirror the keys produced by checkout form handling; any of them may
// be absent.
type CardInput struct {
	Number   string `json:"number,omitempty"`
	Last4    string `json:"last4,omitempty"`
	Brand    string `json:"brand,omitempty"`
	ExpMonth int    `json:"expMonth,omitempty"`
	ExpYear  int    `json:"expYear,omitempty"`
	CVC      string `json:"cvc,omitempty"`
}
