package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	apperrors "github.com/myfarmstand/paymentguard/internal/errors"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

func TestLoadSecret_Plain(t *testing.T) {
	ctx := context.Background()

	t.Run("loads plain secret of valid length", func(t *testing.T) {
		secret, err := LoadSecret(ctx, strings.Repeat("s", 40), "")
		require.NoError(t, err)
		assert.False(t, secret.IsZero())
	})

	t.Run("rejects missing secret", func(t *testing.T) {
		_, err := LoadSecret(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrWeakSecret)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := LoadSecret(ctx, "too-short", "")
		assert.ErrorIs(t, err, domain.ErrWeakSecret)
	})
}

func TestLoadSecret_KMS(t *testing.T) {
	ctx := context.Background()

	// Local keeper backed by an in-memory key, the same driver used for
	// development environments without a cloud KMS.
	kek := make([]byte, 32)
	_, err := rand.Read(kek)
	require.NoError(t, err)
	keeperURI := "base64key://" + base64.URLEncoding.EncodeToString(kek)

	wrap := func(t *testing.T, plaintext string) string {
		t.Helper()
		keeper, err := secrets.OpenKeeper(ctx, keeperURI)
		require.NoError(t, err)
		defer func() { _ = keeper.Close() }()

		ciphertext, err := keeper.Encrypt(ctx, []byte(plaintext))
		require.NoError(t, err)
		return base64.StdEncoding.EncodeToString(ciphertext)
	}

	t.Run("unwraps KMS-wrapped secret", func(t *testing.T) {
		wrapped := wrap(t, strings.Repeat("k", 48))

		secret, err := LoadSecret(ctx, wrapped, keeperURI)
		require.NoError(t, err)
		assert.False(t, secret.IsZero())
	})

	t.Run("unwrapped secret must still meet minimum length", func(t *testing.T) {
		wrapped := wrap(t, "short")

		_, err := LoadSecret(ctx, wrapped, keeperURI)
		assert.ErrorIs(t, err, domain.ErrWeakSecret)
	})

	t.Run("rejects non-base64 ciphertext", func(t *testing.T) {
		_, err := LoadSecret(ctx, "not-base64!!!", keeperURI)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})

	t.Run("rejects invalid keeper URI", func(t *testing.T) {
		wrapped := wrap(t, strings.Repeat("k", 48))

		_, err := LoadSecret(ctx, wrapped, "bogus://nope")
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})

	t.Run("rejects ciphertext wrapped under a different key", func(t *testing.T) {
		otherKek := make([]byte, 32)
		_, err := rand.Read(otherKek)
		require.NoError(t, err)
		otherURI := "base64key://" + base64.URLEncoding.EncodeToString(otherKek)

		wrapped := wrap(t, strings.Repeat("k", 48))

		_, err = LoadSecret(ctx, wrapped, otherURI)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})
}
