package dto

import "github.com/myfarmstand/paymentguard/internal/payment/domain"

// ExtractCardResponse contains the storage-eligible card summary.
type ExtractCardResponse struct {
	Card domain.SafeCardData `json:"card"`
}

// ValidateAmountResponse contains the amount validation verdict.
type ValidateAmountResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// MapValidateAmountResponse maps a domain amount validation to its response.
func MapValidateAmountResponse(v domain.AmountValidation) ValidateAmountResponse {
	return ValidateAmountResponse{
		Valid: v.Valid,
		Error: v.Error,
	}
}

// EncryptResponse contains the opaque encrypted blob.
type EncryptResponse struct {
	Encrypted string `json:"encrypted"`
}

// DecryptResponse contains the decrypted JSON value.
type DecryptResponse struct {
	Data any `json:"data"`
}

// CreateSessionResponse contains the minted session token.
type CreateSessionResponse struct {
	Token string `json:"token"`
}

// ValidateSessionResponse contains the session validation verdict.
type ValidateSessionResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
	Amount int64  `json:"amount,omitempty"`
	Error  string `json:"error,omitempty"`
}

// MapValidateSessionResponse maps a domain session validation to its response.
func MapValidateSessionResponse(v domain.SessionValidation) ValidateSessionResponse {
	return ValidateSessionResponse{
		Valid:  v.Valid,
		UserID: v.UserID,
		Amount: v.Amount,
		Error:  v.Error,
	}
}

// ChannelResponse contains the derived payment channel name.
type ChannelResponse struct {
	Channel string `json:"channel"`
}
