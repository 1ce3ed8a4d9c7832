// Package usecase implements business logic orchestration for payment session
// tokens: minting short-lived tokens that bind a user to an authorized amount,
// and validating them before a charge is executed.
package usecase

import (
	"context"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// SessionTokenUseCase issues and validates expiring payment session tokens.
//
// Tokens are opaque encrypted blobs. Expiry is evaluated lazily at validation
// time against the caller's wall clock; there are no timers, no background
// checks, and the token string itself never changes.
type SessionTokenUseCase interface {
	// CreatePaymentSessionToken mints a token authorizing amountCents for
	// userID with the given time-to-live.
	//
	// It does not validate amountCents (that is the amount validator's job)
	// and deliberately accepts negative ttlMinutes: a negative TTL yields an
	// already-expired token, a supported path for exercising the expiry branch
	// of validation.
	CreatePaymentSessionToken(ctx context.Context, userID string, amountCents int64, ttlMinutes int) (string, error)

	// ValidatePaymentSessionToken checks a token and returns a value-object
	// result; it never returns an error. Decryption failures, expiry, and
	// malformed payloads each map to one of the stable messages in the domain
	// package, never to decryption internals.
	ValidatePaymentSessionToken(ctx context.Context, token string) domain.SessionValidation
}
