package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

var channelNamePattern = regexp.MustCompile(`^sec-payment-[a-f0-9]{16}$`)

func newTestDeriver(t *testing.T, secretValue string) *ChannelDeriver {
	t.Helper()

	secret, err := domain.NewSecret(secretValue)
	require.NoError(t, err)

	deriver, err := NewChannelDeriver(secret, metrics.NewNoOpDiagnosticsSink())
	require.NoError(t, err)
	return deriver
}

func TestChannelDeriver_GenerateSecurePaymentChannel(t *testing.T) {
	ctx := context.Background()
	deriver := newTestDeriver(t, "test-payment-secret-key-0123456789abcdef")

	t.Run("matches the channel name pattern", func(t *testing.T) {
		name, err := deriver.GenerateSecurePaymentChannel(ctx, "u1", "created")
		require.NoError(t, err)
		assert.Regexp(t, channelNamePattern, name)
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		first, err := deriver.GenerateSecurePaymentChannel(ctx, "u1", "created")
		require.NoError(t, err)
		second, err := deriver.GenerateSecurePaymentChannel(ctx, "u1", "created")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("differs per user and operation", func(t *testing.T) {
		base, err := deriver.GenerateSecurePaymentChannel(ctx, "u1", "created")
		require.NoError(t, err)

		otherUser, err := deriver.GenerateSecurePaymentChannel(ctx, "u2", "created")
		require.NoError(t, err)
		otherOp, err := deriver.GenerateSecurePaymentChannel(ctx, "u1", "updated")
		require.NoError(t, err)

		assert.NotEqual(t, base, otherUser)
		assert.NotEqual(t, base, otherOp)
	})

	t.Run("differs under a different secret", func(t *testing.T) {
		base, err := deriver.GenerateSecurePaymentChannel(ctx, "u1", "created")
		require.NoError(t, err)

		other := newTestDeriver(t, "another-payment-secret-0123456789abcdef")
		name, err := other.GenerateSecurePaymentChannel(ctx, "u1", "created")
		require.NoError(t, err)

		assert.NotEqual(t, base, name)
	})
}

func TestNewChannelDeriver(t *testing.T) {
	_, err := NewChannelDeriver(domain.Secret{}, metrics.NewNoOpDiagnosticsSink())
	assert.ErrorIs(t, err, domain.ErrWeakSecret)
}
