package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
	"github.com/myfarmstand/paymentguard/internal/payment/service"
)

// RunGenerateSecret generates a cryptographically secure payment encryption
// secret and prints the environment variables to configure the service with it.
//
// numBytes random bytes are drawn and base64-encoded; 32 bytes yield a 43
// character secret, comfortably above the minimum length. Raw key material is
// zeroed from memory after encoding.
//
// When kmsKeyURI is set, the secret is additionally wrapped with the KMS key
// and the wrapped ciphertext is printed instead of the plaintext. For local
// development, use kmsKeyURI="base64key://<32-byte-base64-key>". For
// production, use a cloud KMS key (gcpkms://, awskms://, azurekeyvault://,
// hashivault://).
func RunGenerateSecret(ctx context.Context, numBytes int, kmsKeyURI string) error {
	if numBytes < domain.MinSecretLength {
		return fmt.Errorf("at least %d random bytes are required, got %d", domain.MinSecretLength, numBytes)
	}

	raw := make([]byte, numBytes)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate random secret: %w", err)
	}

	secret := base64.RawURLEncoding.EncodeToString(raw)
	domain.Zero(raw)

	if kmsKeyURI == "" {
		fmt.Println("# Payment Secret Configuration")
		fmt.Println("# Copy this environment variable to your .env file or secrets manager")
		fmt.Println()
		fmt.Printf("PAYMENT_ENCRYPTION_SECRET=\"%s\"\n", secret)
		return nil
	}

	wrapped, err := service.WrapSecret(ctx, secret, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to wrap secret with KMS: %w", err)
	}

	fmt.Println("# Payment Secret Configuration (KMS Mode)")
	fmt.Println("# Copy these environment variables to your .env file or secrets manager")
	fmt.Println()
	fmt.Printf("PAYMENT_SECRET_KMS_URI=\"%s\"\n", kmsKeyURI)
	fmt.Printf("PAYMENT_ENCRYPTION_SECRET=\"%s\"\n", wrapped)

	return nil
}
