// Package app provides the dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/myfarmstand/paymentguard/internal/config"
	"github.com/myfarmstand/paymentguard/internal/http"
	"github.com/myfarmstand/paymentguard/internal/metrics"
	"github.com/myfarmstand/paymentguard/internal/payment/domain"
	paymentHTTP "github.com/myfarmstand/paymentguard/internal/payment/http"
	"github.com/myfarmstand/paymentguard/internal/payment/service"
	"github.com/myfarmstand/paymentguard/internal/payment/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	diagnosticsSink metrics.DiagnosticsSink

	// Payment protection components
	secret         domain.Secret
	cipher         *service.PaymentCipher
	cardCodec      *service.CardCodec
	channelDeriver *service.ChannelDeriver
	memoryScrubber *service.MemoryScrubber
	sessionUseCase usecase.SessionTokenUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                 sync.Mutex
	loggerInit         sync.Once
	metricsInit        sync.Once
	sinkInit           sync.Once
	secretInit         sync.Once
	cipherInit         sync.Once
	cardCodecInit      sync.Once
	channelDeriverInit sync.Once
	memoryScrubberInit sync.Once
	sessionUseCaseInit sync.Once
	httpServerInit     sync.Once
	metricsServerInit  sync.Once
	initErrors         map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// DiagnosticsSink returns the diagnostics sink. When metrics are disabled it
// returns a no-op sink so core operations never have to nil-check.
func (c *Container) DiagnosticsSink() (metrics.DiagnosticsSink, error) {
	c.sinkInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["diagnosticsSink"] = err
			return
		}
		if provider == nil {
			c.diagnosticsSink = metrics.NewNoOpDiagnosticsSink()
			return
		}
		sink, err := metrics.NewDiagnosticsSink(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["diagnosticsSink"] = err
			return
		}
		c.diagnosticsSink = sink
	})
	if storedErr, exists := c.initErrors["diagnosticsSink"]; exists {
		return nil, storedErr
	}
	return c.diagnosticsSink, nil
}

// Secret returns the payment encryption secret, resolving it through KMS when
// configured. Initialization fails fast on missing or weak secrets.
func (c *Container) Secret() (domain.Secret, error) {
	c.secretInit.Do(func() {
		secret, err := service.LoadSecret(
			context.Background(),
			c.config.PaymentSecret,
			c.config.PaymentSecretKMSURI,
		)
		if err != nil {
			c.initErrors["secret"] = err
			return
		}
		c.secret = secret
	})
	if storedErr, exists := c.initErrors["secret"]; exists {
		return domain.Secret{}, storedErr
	}
	return c.secret, nil
}

// PaymentCipher returns the payment cipher instance.
func (c *Container) PaymentCipher() (*service.PaymentCipher, error) {
	c.cipherInit.Do(func() {
		secret, err := c.Secret()
		if err != nil {
			c.initErrors["cipher"] = fmt.Errorf("failed to get secret for payment cipher: %w", err)
			return
		}

		algorithm, err := domain.ParseAlgorithm(c.config.CipherAlgorithm)
		if err != nil {
			c.initErrors["cipher"] = fmt.Errorf("failed to parse cipher algorithm: %w", err)
			return
		}

		sink, err := c.DiagnosticsSink()
		if err != nil {
			c.initErrors["cipher"] = fmt.Errorf("failed to get diagnostics sink for payment cipher: %w", err)
			return
		}

		cipher, err := service.NewPaymentCipher(secret, algorithm, sink)
		if err != nil {
			c.initErrors["cipher"] = fmt.Errorf("failed to create payment cipher: %w", err)
			return
		}
		c.cipher = cipher
	})
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// CardCodec returns the card codec instance.
func (c *Container) CardCodec() (*service.CardCodec, error) {
	c.cardCodecInit.Do(func() {
		sink, err := c.DiagnosticsSink()
		if err != nil {
			c.initErrors["cardCodec"] = fmt.Errorf("failed to get diagnostics sink for card codec: %w", err)
			return
		}
		c.cardCodec = service.NewCardCodec(sink)
	})
	if storedErr, exists := c.initErrors["cardCodec"]; exists {
		return nil, storedErr
	}
	return c.cardCodec, nil
}

// ChannelDeriver returns the channel deriver instance.
func (c *Container) ChannelDeriver() (*service.ChannelDeriver, error) {
	c.channelDeriverInit.Do(func() {
		secret, err := c.Secret()
		if err != nil {
			c.initErrors["channelDeriver"] = fmt.Errorf("failed to get secret for channel deriver: %w", err)
			return
		}

		sink, err := c.DiagnosticsSink()
		if err != nil {
			c.initErrors["channelDeriver"] = fmt.Errorf("failed to get diagnostics sink for channel deriver: %w", err)
			return
		}

		deriver, err := service.NewChannelDeriver(secret, sink)
		if err != nil {
			c.initErrors["channelDeriver"] = fmt.Errorf("failed to create channel deriver: %w", err)
			return
		}
		c.channelDeriver = deriver
	})
	if storedErr, exists := c.initErrors["channelDeriver"]; exists {
		return nil, storedErr
	}
	return c.channelDeriver, nil
}

// MemoryScrubber returns the memory scrubber instance.
func (c *Container) MemoryScrubber() (*service.MemoryScrubber, error) {
	c.memoryScrubberInit.Do(func() {
		sink, err := c.DiagnosticsSink()
		if err != nil {
			c.initErrors["memoryScrubber"] = fmt.Errorf("failed to get diagnostics sink for memory scrubber: %w", err)
			return
		}
		c.memoryScrubber = service.NewMemoryScrubber(sink)
	})
	if storedErr, exists := c.initErrors["memoryScrubber"]; exists {
		return nil, storedErr
	}
	return c.memoryScrubber, nil
}

// SessionUseCase returns the session token use case wrapped with metrics.
func (c *Container) SessionUseCase() (usecase.SessionTokenUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		cipher, err := c.PaymentCipher()
		if err != nil {
			c.initErrors["sessionUseCase"] = fmt.Errorf("failed to get payment cipher for session use case: %w", err)
			return
		}

		sink, err := c.DiagnosticsSink()
		if err != nil {
			c.initErrors["sessionUseCase"] = fmt.Errorf("failed to get diagnostics sink for session use case: %w", err)
			return
		}

		useCase := usecase.NewSessionTokenUseCase(cipher, sink)
		c.sessionUseCase = usecase.NewSessionTokenUseCaseWithMetrics(useCase, sink)
	})
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initHTTPServer creates the API HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	cardCodec, err := c.CardCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get card codec for http server: %w", err)
	}

	cipher, err := c.PaymentCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment cipher for http server: %w", err)
	}

	channelDeriver, err := c.ChannelDeriver()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel deriver for http server: %w", err)
	}

	memoryScrubber, err := c.MemoryScrubber()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory scrubber for http server: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}

	paymentHandler := paymentHTTP.NewPaymentHandler(
		cardCodec,
		cipher,
		channelDeriver,
		memoryScrubber,
		sessionUseCase,
		int(c.config.SessionTokenTTL.Minutes()),
		logger,
	)

	return http.NewServer(c.config, logger, paymentHandler), nil
}
