package usecase

import (
	"context"
	"time"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// sessionTokenUseCaseWithMetrics decorates SessionTokenUseCase with duration
// instrumentation.
type sessionTokenUseCaseWithMetrics struct {
	next SessionTokenUseCase
	sink metrics.DiagnosticsSink
}

// NewSessionTokenUseCaseWithMetrics wraps a SessionTokenUseCase with duration
// recording on the diagnostics sink.
func NewSessionTokenUseCaseWithMetrics(
	useCase SessionTokenUseCase,
	sink metrics.DiagnosticsSink,
) SessionTokenUseCase {
	return &sessionTokenUseCaseWithMetrics{next: useCase, sink: sink}
}

// CreatePaymentSessionToken records duration metrics for token creation.
func (s *sessionTokenUseCaseWithMetrics) CreatePaymentSessionToken(
	ctx context.Context,
	userID string,
	amountCents int64,
	ttlMinutes int,
) (string, error) {
	start := time.Now()
	token, err := s.next.CreatePaymentSessionToken(ctx, userID, amountCents, ttlMinutes)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.sink.RecordDuration(ctx, "session", "token_create", time.Since(start), status)

	return token, err
}

// ValidatePaymentSessionToken records duration metrics for token validation.
func (s *sessionTokenUseCaseWithMetrics) ValidatePaymentSessionToken(
	ctx context.Context,
	token string,
) domain.SessionValidation {
	start := time.Now()
	result := s.next.ValidatePaymentSessionToken(ctx, token)

	status := "success"
	if !result.Valid {
		status = "error"
	}
	s.sink.RecordDuration(ctx, "session", "token_validate", time.Since(start), status)

	return result
}
