package service

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// MemoryScrubber overwrites and deletes PCI-sensitive fields from live records.
//
// This is a defense-in-depth measure, not a guarantee: in a garbage-collected
// runtime earlier copies of the value may still be reachable after the
// overwrite. The scrubber shares its field set with the log redactor.
type MemoryScrubber struct {
	sink metrics.DiagnosticsSink
}

// NewMemoryScrubber creates a scrubber reporting to the given diagnostics sink.
func NewMemoryScrubber(sink metrics.DiagnosticsSink) *MemoryScrubber {
	return &MemoryScrubber{sink: sink}
}

// SecureMemoryCleanup scrubs obj in place: every PCI-sensitive key is first
// overwritten with a random digit string of the same length as the original
// value's string form, then deleted entirely. Keys outside the sensitive set
// keep their value and presence.
//
// The cleanup never fails from the caller's perspective: any internal panic is
// recovered and reported to the diagnostics sink as a no-op.
func (s *MemoryScrubber) SecureMemoryCleanup(ctx context.Context, obj map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			s.sink.RecordValidationError(ctx, "scrubber", "cleanup", "internal_error")
		}
	}()

	if obj == nil {
		return
	}

	for key, value := range obj {
		if !domain.IsSensitiveField(key) {
			continue
		}
		obj[key] = randomDigits(len(fmt.Sprintf("%v", value)))
		delete(obj, key)
	}

	s.sink.RecordPatternSuccess(ctx, "scrubber", "cleanup")
}

// randomDigits returns a random decimal digit string of length n.
func randomDigits(n int) string {
	if n <= 0 {
		return ""
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Best-effort path: fall back to zeros rather than failing the scrub.
		for i := range buf {
			buf[i] = 0
		}
	}
	for i := range buf {
		buf[i] = '0' + buf[i]%10
	}
	return string(buf)
}
