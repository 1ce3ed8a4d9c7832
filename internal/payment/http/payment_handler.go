// Package http provides HTTP handlers for payment data protection operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myfarmstand/paymentguard/internal/httputil"
	"github.com/myfarmstand/paymentguard/internal/payment/http/dto"
	"github.com/myfarmstand/paymentguard/internal/payment/service"
	"github.com/myfarmstand/paymentguard/internal/payment/usecase"
	customValidation "github.com/myfarmstand/paymentguard/internal/validation"
)

// PaymentHandler handles HTTP requests for card extraction, amount validation,
// payload encryption, session tokens, and channel derivation.
type PaymentHandler struct {
	cardCodec         *service.CardCodec
	cipher            *service.PaymentCipher
	channelDeriver    *service.ChannelDeriver
	memoryScrubber    *service.MemoryScrubber
	sessionUseCase    usecase.SessionTokenUseCase
	defaultTTLMinutes int
	logger            *slog.Logger
}

// NewPaymentHandler creates a new payment handler with required dependencies.
func NewPaymentHandler(
	cardCodec *service.CardCodec,
	cipher *service.PaymentCipher,
	channelDeriver *service.ChannelDeriver,
	memoryScrubber *service.MemoryScrubber,
	sessionUseCase usecase.SessionTokenUseCase,
	defaultTTLMinutes int,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		cardCodec:         cardCodec,
		cipher:            cipher,
		channelDeriver:    channelDeriver,
		memoryScrubber:    memoryScrubber,
		sessionUseCase:    sessionUseCase,
		defaultTTLMinutes: defaultTTLMinutes,
		logger:            logger,
	}
}

// ExtractCardHandler summarizes untrusted card data into a storage-eligible form.
// POST /v1/payments/cards/extract
// Returns 200 OK always; extraction falls back to safe defaults on bad input.
func (h *PaymentHandler) ExtractCardHandler(c *gin.Context) {
	var req dto.ExtractCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	safe := h.cardCodec.ExtractSafeCardData(c.Request.Context(), req.ToCardInput())

	c.JSON(http.StatusOK, dto.ExtractCardResponse{Card: safe})
}

// ValidateAmountHandler checks a payment amount in cents against business rules.
// POST /v1/payments/amounts/validate
// Returns 200 OK with a verdict; an invalid amount is a result, not an HTTP error.
func (h *PaymentHandler) ValidateAmountHandler(c *gin.Context) {
	var req dto.ValidateAmountRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result := service.ValidatePaymentAmount(req.Amount)

	c.JSON(http.StatusOK, dto.MapValidateAmountResponse(result))
}

// EncryptHandler encrypts an arbitrary JSON value into an opaque blob.
// POST /v1/payments/encrypt
func (h *PaymentHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	h.logger.Debug("encrypting payment payload",
		slog.Any("data", service.SanitizeForLogging(req.Data)))

	encrypted, err := h.cipher.EncryptPaymentData(c.Request.Context(), req.Data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Scrub the inbound plaintext once the blob exists
	if payload, ok := req.Data.(map[string]any); ok {
		h.memoryScrubber.SecureMemoryCleanup(c.Request.Context(), payload)
	}

	c.JSON(http.StatusOK, dto.EncryptResponse{Encrypted: encrypted})
}

// DecryptHandler decrypts an opaque blob back into its JSON value.
// POST /v1/payments/decrypt
// Returns 422 for blobs that fail authentication or decoding.
func (h *PaymentHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, err := h.cipher.DecryptPaymentData(c.Request.Context(), req.Encrypted)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Data: data})
}

// CreateSessionHandler mints an encrypted payment session token.
// POST /v1/payments/sessions
// A negative ttlMinutes is accepted and produces an already-expired token.
func (h *PaymentHandler) CreateSessionHandler(c *gin.Context) {
	var req dto.CreateSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ttlMinutes := h.defaultTTLMinutes
	if req.TTLMinutes != nil {
		ttlMinutes = *req.TTLMinutes
	}

	token, err := h.sessionUseCase.CreatePaymentSessionToken(
		c.Request.Context(),
		req.UserID,
		req.Amount,
		ttlMinutes,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CreateSessionResponse{Token: token})
}

// ValidateSessionHandler validates a payment session token.
// POST /v1/payments/sessions/validate
// Returns 200 OK with a verdict; invalid and expired tokens are results, not
// HTTP errors.
func (h *PaymentHandler) ValidateSessionHandler(c *gin.Context) {
	var req dto.ValidateSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.sessionUseCase.ValidatePaymentSessionToken(c.Request.Context(), req.Token)

	c.JSON(http.StatusOK, dto.MapValidateSessionResponse(result))
}

// CreateChannelHandler derives an unguessable payment channel name for a user
// and operation.
// POST /v1/payments/channels
func (h *PaymentHandler) CreateChannelHandler(c *gin.Context) {
	var req dto.ChannelRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	channel, err := h.channelDeriver.GenerateSecurePaymentChannel(
		c.Request.Context(),
		req.UserID,
		req.Operation,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ChannelResponse{Channel: channel})
}
