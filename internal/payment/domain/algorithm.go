package domain

import (
	"github.com/myfarmstand/paymentguard/internal/errors"
)

// Algorithm represents the AEAD algorithm used to protect payment payloads.
//
// Both supported algorithms provide authenticated encryption, so a blob that
// was tampered with or produced under a different secret fails decryption
// instead of yielding garbage plaintext.
type Algorithm string

const (
	// AESGCM is AES-256-GCM, the reference choice. Hardware accelerated on
	// CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305, preferred on platforms without AES
	// hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

var (
	// ErrUnsupportedAlgorithm indicates the requested cipher algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)

// ParseAlgorithm converts a configuration string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case string(AESGCM):
		return AESGCM, nil
	case string(ChaCha20):
		return ChaCha20, nil
	default:
		return "", errors.Wrap(ErrUnsupportedAlgorithm, s)
	}
}
