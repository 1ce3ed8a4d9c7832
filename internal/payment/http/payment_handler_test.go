package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
	"github.com/myfarmstand/paymentguard/internal/payment/service"
	"github.com/myfarmstand/paymentguard/internal/payment/usecase"
)

const testSecret = "payment-handler-test-secret-0123456789"

// newTestRouter builds a router with all payment routes backed by real services.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	secret, err := domain.NewSecret(testSecret)
	require.NoError(t, err)

	sink := metrics.NewNoOpDiagnosticsSink()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cipher, err := service.NewPaymentCipher(secret, domain.AESGCM, sink)
	require.NoError(t, err)

	deriver, err := service.NewChannelDeriver(secret, sink)
	require.NoError(t, err)

	handler := NewPaymentHandler(
		service.NewCardCodec(sink),
		cipher,
		deriver,
		service.NewMemoryScrubber(sink),
		usecase.NewSessionTokenUseCase(cipher, sink),
		15,
		logger,
	)

	router := gin.New()
	v1 := router.Group("/v1/payments")
	v1.POST("/cards/extract", handler.ExtractCardHandler)
	v1.POST("/amounts/validate", handler.ValidateAmountHandler)
	v1.POST("/encrypt", handler.EncryptHandler)
	v1.POST("/decrypt", handler.DecryptHandler)
	v1.POST("/sessions", handler.CreateSessionHandler)
	v1.POST("/sessions/validate", handler.ValidateSessionHandler)
	v1.POST("/channels", handler.CreateChannelHandler)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestExtractCardHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("full card", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/cards/extract",
			`{"number":"4111111111111111","expMonth":12,"expYear":2030,"cvc":"123"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		card := response["card"]
		assert.Equal(t, "1111", card["last4"])
		assert.Equal(t, "visa", card["brand"])
		assert.Equal(t, "•••• •••• •••• 1111", card["maskedNumber"])
		// CVC must never round-trip
		assert.NotContains(t, w.Body.String(), "123")
	})

	t.Run("empty body yields safe defaults", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/cards/extract", `{}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"last4":"****"`)
		assert.Contains(t, w.Body.String(), `"brand":"unknown"`)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/cards/extract", `{"number":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidateAmountHandler(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name      string
		body      string
		wantValid bool
		wantError string
	}{
		{
			name:      "valid amount",
			body:      `{"amount":1999}`,
			wantValid: true,
		},
		{
			name:      "zero amount",
			body:      `{"amount":0}`,
			wantValid: false,
			wantError: "Amount must be greater than zero",
		},
		{
			name:      "negative amount",
			body:      `{"amount":-5}`,
			wantValid: false,
			wantError: "Amount cannot be negative",
		},
		{
			name:      "fractional cents",
			body:      `{"amount":10.5}`,
			wantValid: false,
			wantError: "Amount must be a whole number of cents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "/v1/payments/amounts/validate", tt.body)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantValid, response["valid"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, response["error"])
			}
		})
	}
}

func TestEncryptDecryptHandlers(t *testing.T) {
	router := newTestRouter(t)

	t.Run("round trip", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/encrypt",
			`{"data":{"orderId":"ord_1","total":4200}}`)
		require.Equal(t, http.StatusOK, w.Code)

		var encResponse map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encResponse))
		blob := encResponse["encrypted"]
		require.NotEmpty(t, blob)
		assert.NotContains(t, blob, "ord_1")

		body, err := json.Marshal(map[string]string{"encrypted": blob})
		require.NoError(t, err)

		w = doJSON(t, router, "/v1/payments/decrypt", string(body))
		require.Equal(t, http.StatusOK, w.Code)

		var decResponse map[string]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decResponse))
		assert.Equal(t, "ord_1", decResponse["data"]["orderId"])
		assert.Equal(t, float64(4200), decResponse["data"]["total"])
	})

	t.Run("tampered blob is rejected", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/decrypt",
			`{"encrypted":"bm90LWEtcmVhbC1ibG9iLWp1c3QtYmFzZTY0LXRleHQ="}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("blank blob fails validation", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/decrypt", `{"encrypted":"  "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestSessionHandlers(t *testing.T) {
	router := newTestRouter(t)

	t.Run("create and validate", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/sessions",
			`{"userId":"user-42","amount":2500}`)
		require.Equal(t, http.StatusOK, w.Code)

		var created map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.NotEmpty(t, created["token"])

		body, err := json.Marshal(map[string]string{"token": created["token"]})
		require.NoError(t, err)

		w = doJSON(t, router, "/v1/payments/sessions/validate", string(body))
		require.Equal(t, http.StatusOK, w.Code)

		var verdict map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
		assert.Equal(t, true, verdict["valid"])
		assert.Equal(t, "user-42", verdict["userId"])
		assert.Equal(t, float64(2500), verdict["amount"])
	})

	t.Run("negative ttl mints an expired token", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/sessions",
			`{"userId":"user-42","amount":2500,"ttlMinutes":-1}`)
		require.Equal(t, http.StatusOK, w.Code)

		var created map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		body, err := json.Marshal(map[string]string{"token": created["token"]})
		require.NoError(t, err)

		w = doJSON(t, router, "/v1/payments/sessions/validate", string(body))
		require.Equal(t, http.StatusOK, w.Code)

		var verdict map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
		assert.Equal(t, false, verdict["valid"])
		assert.Equal(t, "Payment session expired", verdict["error"])
	})

	t.Run("garbage token is an invalid result not an http error", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/sessions/validate",
			`{"token":"definitely-not-a-token"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var verdict map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
		assert.Equal(t, false, verdict["valid"])
		assert.Equal(t, "Invalid payment session token", verdict["error"])
	})

	t.Run("blank userId fails validation", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/sessions",
			`{"userId":"  ","amount":2500}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCreateChannelHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("deterministic channel", func(t *testing.T) {
		body := `{"userId":"user-42","operation":"checkout"}`

		w1 := doJSON(t, router, "/v1/payments/channels", body)
		require.Equal(t, http.StatusOK, w1.Code)

		w2 := doJSON(t, router, "/v1/payments/channels", body)
		require.Equal(t, http.StatusOK, w2.Code)

		var first, second map[string]string
		require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &first))
		require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &second))

		assert.Equal(t, first["channel"], second["channel"])
		assert.True(t, strings.HasPrefix(first["channel"], "sec-payment-"))
		assert.Regexp(t, `^sec-payment-[a-f0-9]{16}$`, first["channel"])
	})

	t.Run("missing operation fails validation", func(t *testing.T) {
		w := doJSON(t, router, "/v1/payments/channels", `{"userId":"user-42"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// TestCheckoutFlow exercises the full path a checkout integration takes:
// card summarization, session minting, immediate validation, and log
// sanitization of everything seen along the way.
func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	rawCard := map[string]any{
		"number":   "4242424242424242",
		"cvc":      "999",
		"expMonth": 12,
		"expYear":  2030,
	}

	cardBody, err := json.Marshal(rawCard)
	require.NoError(t, err)

	w := doJSON(t, router, "/v1/payments/cards/extract", string(cardBody))
	require.Equal(t, http.StatusOK, w.Code)

	var extracted map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &extracted))
	assert.Equal(t, "4242", extracted["card"]["last4"])
	assert.Equal(t, "visa", extracted["card"]["brand"])

	w = doJSON(t, router, "/v1/payments/sessions", `{"userId":"u1","amount":1000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	tokenBody, err := json.Marshal(map[string]string{"token": created["token"]})
	require.NoError(t, err)

	w = doJSON(t, router, "/v1/payments/sessions/validate", string(tokenBody))
	require.Equal(t, http.StatusOK, w.Code)

	var verdict map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
	assert.Equal(t, true, verdict["valid"])
	assert.Equal(t, "u1", verdict["userId"])
	assert.Equal(t, float64(1000), verdict["amount"])

	// Anything the flow would log must survive sanitization without a PAN or CVC
	logRecord := map[string]any{
		"event":     "checkout_attempt",
		"userId":    "u1",
		"payment":   map[string]any{"cardNumber": "4242424242424242", "cvc": "999"},
		"safeCard":  extracted["card"],
		"sessionOk": verdict["valid"],
	}

	sanitized, err := json.Marshal(service.SanitizeForLogging(logRecord))
	require.NoError(t, err)
	assert.NotContains(t, string(sanitized), "4242424242424242")
	assert.NotContains(t, string(sanitized), "999")
	assert.Contains(t, string(sanitized), "[REDACTED_PCI]")
}
