package domain

import (
	"github.com/myfarmstand/paymentguard/internal/errors"
)

// Payment protection error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors to
// provide context for payment data protection failures. Integrity and trust
// failures (wrong secret, corrupted ciphertext) are returned as errors because
// they indicate tampering or misconfiguration the caller must not ignore.
// Routine shape and business-rule failures (bad amount, expired token) are
// returned as value objects instead, never as errors.
var (
	// ErrWeakSecret indicates the payment encryption secret is absent or below
	// the minimum length. This is fatal at startup.
	ErrWeakSecret = errors.Wrap(errors.ErrConfiguration, "payment secret must be at least 32 characters")

	// ErrEncryptionFailed indicates a payload could not be serialized or encrypted.
	// The message never includes the secret or the plaintext.
	ErrEncryptionFailed = errors.Wrap(errors.ErrInternal, "encryption failed")

	// ErrDecryptionFailed indicates a blob is malformed, was produced under a
	// different secret, or did not decrypt to valid JSON.
	//
	// For security reasons the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrChannelGeneration indicates the MAC primitive failed while deriving a
	// secure channel name. This should not occur under normal operation.
	ErrChannelGeneration = errors.Wrap(errors.ErrInternal, "channel generation failed")
)
