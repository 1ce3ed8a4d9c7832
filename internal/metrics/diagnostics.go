package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DiagnosticsSink is the observability collaborator consumed by the payment
// protection core. Calls are fire-and-forget: a failure inside the sink must
// never cause a core operation to fail or change its return value, so
// implementations do not return errors.
type DiagnosticsSink interface {
	// RecordPatternSuccess records a successful core operation.
	// Component examples: "card_codec", "cipher", "session", "channel".
	// Operation examples: "extract_safe_card_data", "encrypt", "token_create".
	RecordPatternSuccess(ctx context.Context, component, operation string)

	// RecordValidationError records a failed or rejected core operation.
	// Reason examples: "decryption_failed", "expired", "invalid_data".
	RecordValidationError(ctx context.Context, component, operation, reason string)

	// RecordDuration records the duration of a core operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, component, operation string, duration time.Duration, status string)
}

// diagnosticsSink implements DiagnosticsSink using OpenTelemetry metrics.
type diagnosticsSink struct {
	successCounter metric.Int64Counter
	errorCounter   metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// NewDiagnosticsSink creates a DiagnosticsSink backed by the provided meter provider.
// The namespace parameter is used as a prefix for all metric names.
func NewDiagnosticsSink(meterProvider metric.MeterProvider, namespace string) (DiagnosticsSink, error) {
	meter := meterProvider.Meter(namespace)

	successCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_pattern_success_total", namespace),
		metric.WithDescription("Total number of successful payment protection operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create success counter: %w", err)
	}

	errorCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_validation_errors_total", namespace),
		metric.WithDescription("Total number of failed or rejected payment protection operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create error counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of payment protection operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &diagnosticsSink{
		successCounter: successCounter,
		errorCounter:   errorCounter,
		durationHisto:  durationHisto,
	}, nil
}

// RecordPatternSuccess increments the success counter with component and operation labels.
func (d *diagnosticsSink) RecordPatternSuccess(ctx context.Context, component, operation string) {
	d.successCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("component", component),
			attribute.String("operation", operation),
		),
	)
}

// RecordValidationError increments the error counter with component, operation, and reason labels.
func (d *diagnosticsSink) RecordValidationError(ctx context.Context, component, operation, reason string) {
	d.errorCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("component", component),
			attribute.String("operation", operation),
			attribute.String("reason", reason),
		),
	)
}

// RecordDuration records the operation duration in seconds.
func (d *diagnosticsSink) RecordDuration(
	ctx context.Context,
	component, operation string,
	duration time.Duration,
	status string,
) {
	d.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("component", component),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// NoOpDiagnosticsSink is a no-op implementation of DiagnosticsSink for when
// metrics are disabled.
type NoOpDiagnosticsSink struct{}

// NewNoOpDiagnosticsSink creates a no-op DiagnosticsSink implementation.
func NewNoOpDiagnosticsSink() DiagnosticsSink {
	return &NoOpDiagnosticsSink{}
}

// RecordPatternSuccess does nothing when metrics are disabled.
func (n *NoOpDiagnosticsSink) RecordPatternSuccess(ctx context.Context, component, operation string) {
}

// RecordValidationError does nothing when metrics are disabled.
func (n *NoOpDiagnosticsSink) RecordValidationError(ctx context.Context, component, operation, reason string) {
}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpDiagnosticsSink) RecordDuration(
	ctx context.Context,
	component, operation string,
	duration time.Duration,
	status string,
) {
}
