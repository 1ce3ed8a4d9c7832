// Package domain defines the core types and invariants of the payment data
// protection module: the PCI-sensitive field set, safe card metadata, the
// process-wide encryption secret, session token payloads, and amount limits.
package domain

// RedactedMarker replaces the value of every PCI-sensitive field during log
// sanitization. The literal is a stable observable contract: downstream log
// tooling greps for it.
const RedactedMarker = "[REDACTED_PCI]"

// sensitiveFields is the closed set of field names treated as PCI-sensitive
// regardless of where they appear in a record. The set is immutable at runtime
// and shared by the log redactor and the memory scrubber.
var sensitiveFields = map[string]struct{}{
	"cardNumber":    {},
	"cvc":           {},
	"cvv":           {},
	"securityCode":  {},
	"pin":           {},
	"accountNumber": {},
	"routingNumber": {},
	"bankAccount":   {},
}

// IsSensitiveField reports whether the given field name belongs to the
// PCI-sensitive field set. Matching is exact: field names come from our own
// payloads, which use consistent camelCase keys.
func IsSensitiveField(name string) bool {
	_, ok := sensitiveFields[name]
	return ok
}

// SensitiveFieldNames returns a copy of the sensitive field set as a slice.
// The copy keeps callers from mutating the shared set.
func SensitiveFieldNames() []string {
	names := make([]string, 0, len(sensitiveFields))
	for name := range sensitiveFields {
		names = append(names, name)
	}
	return names
}
