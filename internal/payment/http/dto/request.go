// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/myfarmstand/paymentguard/internal/payment/domain"
	customValidation "github.com/myfarmstand/paymentguard/internal/validation"
)

// ExtractCardRequest contains the untrusted card data to summarize.
// All fields are optional; extraction falls back to safe defaults for
// anything missing or malformed.
type ExtractCardRequest struct {
	Number   string `json:"number"`
	Last4    string `json:"last4"`
	Brand    string `json:"brand"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
	CVC      string `json:"cvc"`
}

// ToCardInput maps the request to the domain card input.
func (r *ExtractCardRequest) ToCardInput() domain.CardInput {
	return domain.CardInput{
		Number:   r.Number,
		Last4:    r.Last4,
		Brand:    r.Brand,
		ExpMonth: r.ExpMonth,
		ExpYear:  r.ExpYear,
		CVC:      r.CVC,
	}
}

// ValidateAmountRequest contains the payment amount to check, in cents.
type ValidateAmountRequest struct {
	Amount float64 `json:"amount"`
}

// EncryptRequest contains the JSON value to encrypt. Any JSON value is
// accepted, including null.
type EncryptRequest struct {
	Data any `json:"data"`
}

// DecryptRequest contains the encrypted blob to decrypt.
type DecryptRequest struct {
	Encrypted string `json:"encrypted"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Encrypted,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// CreateSessionRequest contains the parameters for minting a payment session token.
// TTLMinutes is optional; when omitted the server default applies. Negative
// values are accepted and produce an already-expired token.
type CreateSessionRequest struct {
	UserID     string `json:"userId"`
	Amount     int64  `json:"amount"`
	TTLMinutes *int   `json:"ttlMinutes"`
}

// Validate checks if the create session request is valid.
func (r *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// ValidateSessionRequest contains the session token to validate.
type ValidateSessionRequest struct {
	Token string `json:"token"`
}

// Validate checks if the validate session request is valid.
func (r *ValidateSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ChannelRequest contains the parameters for deriving a payment channel name.
type ChannelRequest struct {
	UserID    string `json:"userId"`
	Operation string `json:"operation"`
}

// Validate checks if the channel request is valid.
func (r *ChannelRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Operation,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
