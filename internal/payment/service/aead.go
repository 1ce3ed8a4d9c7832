// Package service implements the payment data protection core: log redaction,
// card masking and brand detection, symmetric payload encryption, secure
// channel derivation, amount validation, and best-effort memory scrubbing.
//
// All operations are synchronous, in-memory, and safe for concurrent use. The
// only shared state is the process-wide payment secret, which is read-only
// after initialization.
package service

import (
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// AEAD is the authenticated encryption primitive behind the payment cipher.
// Implementations are stateless and safe for concurrent use; every Encrypt
// call generates a fresh random nonce.
type AEAD interface {
	// Encrypt seals plaintext and returns the ciphertext (with authentication
	// tag appended) together with the freshly generated nonce.
	Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error)

	// Decrypt opens ciphertext using the provided nonce, verifying the
	// authentication tag before returning plaintext.
	Decrypt(ciphertext, nonce []byte) ([]byte, error)

	// NonceSize returns the nonce length in bytes.
	NonceSize() int
}

// NewAEAD creates an AEAD cipher for the given key and algorithm.
// The key must be exactly 32 bytes for both supported algorithms.
func NewAEAD(key []byte, alg domain.Algorithm) (AEAD, error) {
	if len(key) != 32 {
		return nil, domain.ErrInvalidKeySize
	}

	switch alg {
	case domain.AESGCM:
		return NewAESGCM(key)
	case domain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, domain.ErrUnsupportedAlgorithm
	}
}
