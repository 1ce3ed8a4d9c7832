package service

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// PaymentCipher encrypts and decrypts small JSON-serializable payment payloads
// for temporary persistence.
//
// The produced blob is an opaque base64 string (nonce || ciphertext) carrying
// no metadata about its origin. It is decryptable only under the same secret
// that produced it; its internal layout is private and may change between
// versions. The single most important property is the round trip: for any
// JSON-serializable x, DecryptPaymentData(EncryptPaymentData(x)) deep-equals x.
type PaymentCipher struct {
	aead AEAD
	sink metrics.DiagnosticsSink
}

// NewPaymentCipher builds a cipher bound to the process payment secret.
// The 32-byte AEAD key is derived from the secret, so two processes configured
// with the same secret can decrypt each other's blobs.
func NewPaymentCipher(
	secret domain.Secret,
	alg domain.Algorithm,
	sink metrics.DiagnosticsSink,
) (*PaymentCipher, error) {
	if secret.IsZero() {
		return nil, domain.ErrWeakSecret
	}

	aead, err := NewAEAD(secret.Key(), alg)
	if err != nil {
		return nil, err
	}

	return &PaymentCipher{aead: aead, sink: sink}, nil
}

// EncryptPaymentData serializes data to JSON and encrypts it under the payment
// secret, returning the opaque blob string.
//
// Returns ErrEncryptionFailed if serialization or the cipher itself fails. The
// returned error never embeds the secret or the plaintext; callers that need
// the cause for debugging get only the counter recorded on the diagnostics sink.
func (c *PaymentCipher) EncryptPaymentData(ctx context.Context, data any) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		c.sink.RecordValidationError(ctx, "cipher", "encrypt", "serialization_failed")
		return "", domain.ErrEncryptionFailed
	}

	ciphertext, nonce, err := c.aead.Encrypt(plaintext)
	domain.Zero(plaintext)
	if err != nil {
		c.sink.RecordValidationError(ctx, "cipher", "encrypt", "cipher_failed")
		return "", domain.ErrEncryptionFailed
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	c.sink.RecordPatternSuccess(ctx, "cipher", "encrypt")
	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptPaymentData decrypts a blob produced by EncryptPaymentData and parses
// the recovered JSON.
//
// Returns ErrDecryptionFailed if the blob is malformed, the secret does not
// match (authentication failure), or decryption yields an empty or non-JSON
// payload. The error is deliberately generic: a failed decryption indicates
// tampering or misconfiguration, and its internals must not leak.
func (c *PaymentCipher) DecryptPaymentData(ctx context.Context, blob string) (any, error) {
	var data any
	if err := c.decryptInto(ctx, blob, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *PaymentCipher) decryptInto(ctx context.Context, blob string, dst any) error {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		c.sink.RecordValidationError(ctx, "cipher", "decrypt", "malformed_blob")
		return domain.ErrDecryptionFailed
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) <= nonceSize {
		c.sink.RecordValidationError(ctx, "cipher", "decrypt", "malformed_blob")
		return domain.ErrDecryptionFailed
	}

	plaintext, err := c.aead.Decrypt(raw[nonceSize:], raw[:nonceSize])
	if err != nil {
		c.sink.RecordValidationError(ctx, "cipher", "decrypt", "authentication_failed")
		return domain.ErrDecryptionFailed
	}
	defer domain.Zero(plaintext)

	if len(plaintext) == 0 {
		c.sink.RecordValidationError(ctx, "cipher", "decrypt", "empty_payload")
		return domain.ErrDecryptionFailed
	}

	if err := json.Unmarshal(plaintext, dst); err != nil {
		c.sink.RecordValidationError(ctx, "cipher", "decrypt", "invalid_json")
		return domain.ErrDecryptionFailed
	}

	c.sink.RecordPatternSuccess(ctx, "cipher", "decrypt")
	return nil
}
