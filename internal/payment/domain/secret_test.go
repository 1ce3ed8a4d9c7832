package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/myfarmstand/paymentguard/internal/errors"
)

func TestNewSecret(t *testing.T) {
	t.Run("accepts secret of minimum length", func(t *testing.T) {
		secret, err := NewSecret(strings.Repeat("a", MinSecretLength))
		require.NoError(t, err)
		assert.False(t, secret.IsZero())
	})

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewSecret("")
		assert.ErrorIs(t, err, ErrWeakSecret)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})

	t.Run("rejects secret below minimum length", func(t *testing.T) {
		_, err := NewSecret(strings.Repeat("a", MinSecretLength-1))
		assert.ErrorIs(t, err, ErrWeakSecret)
	})
}

func TestSecret_Key(t *testing.T) {
	secret, err := NewSecret("test-payment-secret-key-0123456789abcdef")
	require.NoError(t, err)

	t.Run("derives 32-byte key", func(t *testing.T) {
		assert.Len(t, secret.Key(), 32)
	})

	t.Run("derivation is deterministic", func(t *testing.T) {
		assert.Equal(t, secret.Key(), secret.Key())
	})

	t.Run("different secrets derive different keys", func(t *testing.T) {
		other, err := NewSecret("another-payment-secret-key-0123456789abc")
		require.NoError(t, err)
		assert.NotEqual(t, secret.Key(), other.Key())
	})
}

func TestSecret_String(t *testing.T) {
	secret, err := NewSecret("super-secret-payment-value-0123456789abc")
	require.NoError(t, err)

	// The secret must never leak through formatting.
	assert.Equal(t, RedactedMarker, secret.String())
	assert.NotContains(t, fmt.Sprintf("%v %s", secret, secret), "super-secret")
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	assert.NotPanics(t, func() { Zero(nil) })
}
