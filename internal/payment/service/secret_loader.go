package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	"github.com/myfarmstand/paymentguard/internal/errors"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"

	// Register KMS provider drivers for secret unwrapping.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// LoadSecret resolves the payment encryption secret from configuration.
//
// This runs exactly once per process, during startup, and fails fast: a
// missing or too-short secret aborts initialization instead of being handled
// downstream.
//
// Two modes are supported:
//   - plain: value is the secret itself (development, container env injection)
//   - KMS-wrapped: kmsKeyURI is set and value is the base64 ciphertext of the
//     secret, unwrapped through gocloud.dev/secrets (gcpkms://, awskms://,
//     azurekeyvault://, hashivault://, base64key:// for local development)
func LoadSecret(ctx context.Context, value, kmsKeyURI string) (domain.Secret, error) {
	if kmsKeyURI == "" {
		return domain.NewSecret(value)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return domain.Secret{}, errors.Wrap(errors.ErrConfiguration, "payment secret is not valid base64 ciphertext")
	}

	keeper, err := secrets.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return domain.Secret{}, errors.Wrap(errors.ErrConfiguration, "failed to open KMS keeper")
	}
	defer func() { _ = keeper.Close() }()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return domain.Secret{}, errors.Wrap(errors.ErrConfiguration, "failed to unwrap payment secret with KMS")
	}
	defer domain.Zero(plaintext)

	return domain.NewSecret(string(plaintext))
}

// WrapSecret encrypts a plaintext secret with the KMS key and returns the
// base64 ciphertext. The result is the value to store in
// PAYMENT_ENCRYPTION_SECRET when PAYMENT_SECRET_KMS_URI is set.
func WrapSecret(ctx context.Context, plaintext, kmsKeyURI string) (string, error) {
	keeper, err := secrets.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return "", errors.Wrap(errors.ErrConfiguration, "failed to open KMS keeper")
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return "", errors.Wrap(errors.ErrConfiguration, "failed to wrap payment secret with KMS")
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
