package domain

// SessionTokenPayload is the plaintext structure wrapped inside an encrypted
// payment session token. The token string itself is opaque to callers; its
// internal layout is private to this module and need not be stable across
// versions.
//
// Timestamp and Expires are epoch milliseconds. Expires is always computed as
// Timestamp + ttlMinutes*60000 at creation time, even for negative TTLs: an
// already-expired token is a deliberate supported path used to exercise the
// expiry branch of validation.
type SessionTokenPayload struct {
	UserID    string `json:"userId"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	Expires   int64  `json:"expires"`
	Nonce     string `json:"nonce"`
}

// Stable validation error messages. Tests and callers match on these strings,
// so they must not change. The expiry message contains the substring "expired".
const (
	SessionErrInvalidToken = "Invalid payment session token"
	SessionErrExpired      = "Payment session expired"
	SessionErrInvalidData  = "Invalid session data"
)

// SessionValidation is the value-object result of validating a session token.
//
// A token is conceptually fresh until its embedded expiry passes, then
// expired; a token that fails decryption or shape checks is invalid
// permanently, independent of time. Validation never returns an error value:
// decryption internals must not leak, so every failure collapses into one of
// the stable messages above.
type SessionValidation struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
	Amount int64  `json:"amount,omitempty"`
	Error  string `json:"error,omitempty"`
}
