package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// channelPrefix is the label under which per-user payment channels are derived.
// Both ends of a pub/sub relationship compute the same name independently, so
// the prefix is part of the wire contract and must not change.
const channelPrefix = "myfarmstand-payment-"

// channelHexLength is the number of hex characters of the MAC kept in the
// channel name.
const channelHexLength = 16

// ChannelDeriver deterministically derives unguessable pub/sub channel names
// from a user id and operation name.
//
// The derivation is a pure function: identical inputs always yield the
// identical output, with no randomness, so publisher and subscriber never need
// to exchange the channel name. An attacker without the secret cannot predict
// it. Output matches ^sec-payment-[a-f0-9]{16}$.
type ChannelDeriver struct {
	secret domain.Secret
	sink   metrics.DiagnosticsSink
}

// NewChannelDeriver creates a deriver bound to the process payment secret.
func NewChannelDeriver(secret domain.Secret, sink metrics.DiagnosticsSink) (*ChannelDeriver, error) {
	if secret.IsZero() {
		return nil, domain.ErrWeakSecret
	}
	return &ChannelDeriver{secret: secret, sink: sink}, nil
}

// GenerateSecurePaymentChannel derives the channel name for (operation, userID).
// Returns ErrChannelGeneration only if the MAC primitive itself fails, which
// should not occur under normal operation.
func (d *ChannelDeriver) GenerateSecurePaymentChannel(
	ctx context.Context,
	userID, operation string,
) (string, error) {
	mac := hmac.New(sha256.New, d.secret.MAC())
	if _, err := mac.Write([]byte(channelPrefix + operation + "-" + userID)); err != nil {
		d.sink.RecordValidationError(ctx, "channel", "derive", "mac_failed")
		return "", domain.ErrChannelGeneration
	}

	digest := hex.EncodeToString(mac.Sum(nil))
	if len(digest) < channelHexLength {
		d.sink.RecordValidationError(ctx, "channel", "derive", "short_digest")
		return "", domain.ErrChannelGeneration
	}

	d.sink.RecordPatternSuccess(ctx, "channel", "derive")
	return "sec-payment-" + digest[:channelHexLength], nil
}
