package service

import (
	"reflect"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
)

// maxRedactionDepth bounds recursion into nested records. Log payloads are
// shallow in practice; anything deeper is almost certainly a cycle, and cyclic
// structures would otherwise recurse forever. Values past the limit are
// replaced with truncationMarker rather than guessed at.
const maxRedactionDepth = 32

// truncationMarker replaces values nested beyond maxRedactionDepth.
const truncationMarker = "[REDACTED_DEPTH]"

// SanitizeForLogging returns a deep copy of value with every PCI-sensitive
// field replaced by the redaction marker. It must be applied to any structure
// before it is logged.
//
// Non-record inputs (strings, numbers, booleans, nil) pass through unchanged.
// Record-like inputs (maps with string keys) are copied, never mutated, with
// sensitive keys redacted and all other values recursed into; sequences are
// recursed element-wise. Unknown shapes pass through as-is. The function never
// panics and performs no I/O.
func SanitizeForLogging(value any) any {
	return sanitize(value, 0)
}

func sanitize(value any, depth int) any {
	if depth > maxRedactionDepth {
		return truncationMarker
	}

	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if domain.IsSensitiveField(key) {
				out[key] = domain.RedactedMarker
				continue
			}
			out[key] = sanitize(val, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = sanitize(val, depth+1)
		}
		return out
	}

	return sanitizeReflect(value, depth)
}

// sanitizeReflect handles record and sequence shapes beyond the common
// map[string]any / []any pair, e.g. map[string]string payloads or typed
// slices. Everything else passes through unchanged.
func sanitizeReflect(value any, depth int) any {
	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			if domain.IsSensitiveField(key) {
				out[key] = domain.RedactedMarker
				continue
			}
			out[key] = sanitize(iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Raw bytes are not record-like.
			return value
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = sanitize(rv.Index(i).Interface(), depth+1)
		}
		return out
	default:
		return value
	}
}
