// Package http provides the HTTP server, routing, and server middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/myfarmstand/paymentguard/internal/config"
	paymentHTTP "github.com/myfarmstand/paymentguard/internal/payment/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server with all payment routes registered.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	paymentHandler *paymentHTTP.PaymentHandler,
) *Server {
	s := &Server{logger: logger}

	router := s.createRouter(cfg, paymentHandler)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// createRouter builds the Gin engine with middleware and routes.
func (s *Server) createRouter(
	cfg *config.Config,
	paymentHandler *paymentHTTP.PaymentHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)

	v1 := router.Group("/v1/payments")
	{
		v1.POST("/cards/extract", paymentHandler.ExtractCardHandler)
		v1.POST("/amounts/validate", paymentHandler.ValidateAmountHandler)
		v1.POST("/encrypt", paymentHandler.EncryptHandler)
		v1.POST("/decrypt", paymentHandler.DecryptHandler)
		v1.POST("/sessions/validate", paymentHandler.ValidateSessionHandler)
		v1.POST("/channels", paymentHandler.CreateChannelHandler)

		// Token minting is the only endpoint producing long-lived credentials,
		// so it carries its own per-IP rate limit.
		sessionHandlers := []gin.HandlerFunc{}
		if cfg.RateLimitTokenEnabled {
			sessionHandlers = append(sessionHandlers, paymentHTTP.SessionRateLimitMiddleware(
				cfg.RateLimitTokenRequestsPerSec,
				cfg.RateLimitTokenBurst,
				s.logger,
			))
		}
		sessionHandlers = append(sessionHandlers, paymentHandler.CreateSessionHandler)
		v1.POST("/sessions", sessionHandlers...)
	}

	return router
}

// healthHandler reports liveness. The service is stateless, so liveness is
// process-up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
