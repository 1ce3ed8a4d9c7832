package domain

import (
	"crypto/sha256"
)

// MinSecretLength is the minimum number of characters required for the payment
// encryption secret. Startup aborts if the configured secret is shorter, since
// silently proceeding with a weak secret would invisibly weaken every
// downstream guarantee.
const MinSecretLength = 32

// Secret is the process-wide payment encryption secret.
//
// It is loaded exactly once during process initialization, is read-only
// afterwards, and must never be logged. Components receive it by value through
// dependency injection rather than reading hidden global state, which keeps
// secret rotation and multi-secret testing possible.
type Secret struct {
	value string
}

// NewSecret validates and wraps a raw secret string.
// Returns ErrWeakSecret if the value is absent or shorter than MinSecretLength.
func NewSecret(value string) (Secret, error) {
	if len(value) < MinSecretLength {
		return Secret{}, ErrWeakSecret
	}
	return Secret{value: value}, nil
}

// Key derives the 32-byte symmetric key used by the AEAD ciphers.
// The secret is a passphrase-style configuration value, so it is hashed with
// SHA-256 to produce uniformly distributed key material of the exact size
// AES-256 and ChaCha20-Poly1305 require.
func (s Secret) Key() []byte {
	sum := sha256.Sum256([]byte(s.value))
	return sum[:]
}

// MAC returns the raw secret bytes for use as an HMAC key.
func (s Secret) MAC() []byte {
	return []byte(s.value)
}

// String implements fmt.Stringer and always redacts the secret value so that
// accidental logging of the Secret cannot leak it.
func (s Secret) String() string {
	return RedactedMarker
}

// IsZero reports whether the secret was never initialized.
func (s Secret) IsZero() bool {
	return s.value == ""
}
