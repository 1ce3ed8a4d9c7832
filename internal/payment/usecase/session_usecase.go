package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
	"github.com/myfarmstand/paymentguard/internal/payment/service"
)

// sessionNonceBytes is the length of the random nonce embedded in each token
// to reduce replay predictability.
const sessionNonceBytes = 16

// millisPerMinute converts a TTL in minutes to epoch-millisecond arithmetic.
const millisPerMinute = 60_000

// sessionTokenUseCase implements SessionTokenUseCase on top of the payment cipher.
//
// The clock is injected so tests can pin wall time; production wiring uses
// time.Now.
type sessionTokenUseCase struct {
	cipher *service.PaymentCipher
	sink   metrics.DiagnosticsSink
	now    func() time.Time
}

// NewSessionTokenUseCase creates the production session token use case.
func NewSessionTokenUseCase(cipher *service.PaymentCipher, sink metrics.DiagnosticsSink) SessionTokenUseCase {
	return NewSessionTokenUseCaseWithClock(cipher, sink, time.Now)
}

// NewSessionTokenUseCaseWithClock creates a session token use case with an
// explicit clock.
func NewSessionTokenUseCaseWithClock(
	cipher *service.PaymentCipher,
	sink metrics.DiagnosticsSink,
	now func() time.Time,
) SessionTokenUseCase {
	return &sessionTokenUseCase{cipher: cipher, sink: sink, now: now}
}

// CreatePaymentSessionToken builds the session payload and encrypts it.
// Expires is always timestamp + ttlMinutes*60000, even for negative TTLs;
// creation never validates its inputs.
func (s *sessionTokenUseCase) CreatePaymentSessionToken(
	ctx context.Context,
	userID string,
	amountCents int64,
	ttlMinutes int,
) (string, error) {
	nonce := make([]byte, sessionNonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		s.sink.RecordValidationError(ctx, "session", "token_create", "nonce_failed")
		return "", fmt.Errorf("failed to generate session nonce: %w", err)
	}

	timestamp := s.now().UnixMilli()
	payload := domain.SessionTokenPayload{
		UserID:    userID,
		Amount:    amountCents,
		Timestamp: timestamp,
		Expires:   timestamp + int64(ttlMinutes)*millisPerMinute,
		Nonce:     hex.EncodeToString(nonce),
	}

	token, err := s.cipher.EncryptPaymentData(ctx, payload)
	if err != nil {
		s.sink.RecordValidationError(ctx, "session", "token_create", "encryption_failed")
		return "", err
	}

	s.sink.RecordPatternSuccess(ctx, "session", "token_create")
	return token, nil
}

// ValidatePaymentSessionToken decrypts and checks a session token.
//
// A token that fails decryption is invalid permanently, independent of time.
// A decrypted token is expired when the caller's current wall clock is past
// the embedded expiry. Payloads missing a userId or a numeric amount are
// rejected as invalid session data. Successful validation returns the bound
// user and amount.
func (s *sessionTokenUseCase) ValidatePaymentSessionToken(
	ctx context.Context,
	token string,
) domain.SessionValidation {
	data, err := s.cipher.DecryptPaymentData(ctx, token)
	if err != nil {
		s.sink.RecordValidationError(ctx, "session", "token_validate", "decryption_failed")
		return domain.SessionValidation{Valid: false, Error: domain.SessionErrInvalidToken}
	}

	payload, ok := data.(map[string]any)
	if !ok {
		s.sink.RecordValidationError(ctx, "session", "token_validate", "invalid_data")
		return domain.SessionValidation{Valid: false, Error: domain.SessionErrInvalidData}
	}

	if expires, ok := asNumber(payload["expires"]); ok && float64(s.now().UnixMilli()) > expires {
		s.sink.RecordValidationError(ctx, "session", "token_validate", "expired")
		return domain.SessionValidation{Valid: false, Error: domain.SessionErrExpired}
	}

	userID, ok := payload["userId"].(string)
	if !ok || userID == "" {
		s.sink.RecordValidationError(ctx, "session", "token_validate", "invalid_data")
		return domain.SessionValidation{Valid: false, Error: domain.SessionErrInvalidData}
	}

	amount, ok := asNumber(payload["amount"])
	if !ok {
		s.sink.RecordValidationError(ctx, "session", "token_validate", "invalid_data")
		return domain.SessionValidation{Valid: false, Error: domain.SessionErrInvalidData}
	}

	s.sink.RecordPatternSuccess(ctx, "session", "token_validate")
	return domain.SessionValidation{Valid: true, UserID: userID, Amount: int64(amount)}
}

// asNumber extracts a numeric JSON value. Decrypted payloads come back as
// map[string]any, so numbers arrive as float64.
func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}
