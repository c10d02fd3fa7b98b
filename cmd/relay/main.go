package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/launchpad/internal/config"
	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/http"
	"github.com/davidbz/launchpad/internal/http/middleware"
	"github.com/davidbz/launchpad/internal/metrics"
	"github.com/davidbz/launchpad/internal/observability"
	"github.com/davidbz/launchpad/internal/provider/echo"
	"github.com/davidbz/launchpad/internal/provider/gemini"
	"github.com/davidbz/launchpad/internal/provider/registry"
	"github.com/davidbz/launchpad/internal/ratelimit"
)

func main() {
	container := buildContainer()

	if err := container.Invoke(run); err != nil {
		log.Fatalf("Relay stopped with error: %v", err)
	}
}

func run(server *http.Server, limiter *ratelimit.Limiter, logger *zap.Logger) error {
	defer func() { _ = logger.Sync() }()
	defer func() {
		if err := limiter.Close(); err != nil {
			logger.Warn("failed to close rate limiter", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout())
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(metrics.NewRegistry); err != nil {
		log.Fatalf("Failed to provide metrics registry: %v", err)
	}
	if err := container.Provide(func(recorder *metrics.PrometheusRecorder) domain.MetricsRecorder {
		return recorder
	}); err != nil {
		log.Fatalf("Failed to provide metrics recorder interface: %v", err)
	}
	if err := container.Provide(metrics.NewPrometheusRecorder); err != nil {
		log.Fatalf("Failed to provide metrics recorder: %v", err)
	}

	// Upstream
	if err := container.Provide(newUpstream); err != nil {
		log.Fatalf("Failed to provide upstream: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(cfg *gemini.Config) domain.RelayOptions {
		return domain.RelayOptions{
			DefaultModel:           cfg.DefaultModel,
			DefaultMaxOutputTokens: cfg.MaxTokens,
		}
	}); err != nil {
		log.Fatalf("Failed to provide relay options: %v", err)
	}
	if err := container.Provide(domain.NewRelayService); err != nil {
		log.Fatalf("Failed to provide relay service: %v", err)
	}

	// Rate limiting
	if err := container.Provide(newLimiter); err != nil {
		log.Fatalf("Failed to provide rate limiter: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newUpstream registers every upstream and returns the one UPSTREAM_MODE names.
// The logger parameter orders logger setup before the credential warning.
func newUpstream(mode *config.UpstreamConfig, cfg *gemini.Config, logger *zap.Logger) (domain.Upstream, error) {
	client := gemini.NewClient(*cfg)

	reg := registry.NewRegistry()
	for _, upstream := range []domain.Upstream{client, echo.NewUpstream()} {
		if err := reg.Register(upstream); err != nil {
			return nil, fmt.Errorf("failed to register %s upstream: %w", upstream.Name(), err)
		}
	}

	name := mode.Mode
	if name == "" {
		name = config.UpstreamGemini
	}

	upstream, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, reg.List())
	}

	switch name {
	case config.UpstreamEcho:
		logger.Warn("echo upstream enabled, prompts are not sent to Gemini")
	case config.UpstreamGemini:
		if client.HasCredential() {
			logger.Info("API key configured")
		} else {
			logger.Warn("Gemini API key not set, requests will fail upstream. Set GEMINI_API_KEY in .env")
		}
	}

	return upstream, nil
}

// newLimiter returns nil when rate limiting is disabled. An unreachable
// Redis falls back to the in-process store.
func newLimiter(
	cfg *ratelimit.Config,
	redisCfg *ratelimit.RedisConfig,
	logger *zap.Logger,
) (*ratelimit.Limiter, error) {
	if !cfg.Enabled() {
		return nil, nil //nolint:nilnil // nil limiter disables the middleware
	}

	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if redisCfg.URL != "" {
		client, err := ratelimit.NewRedisClient(redisCfg.URL)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory rate limiting", zap.Error(err))
		} else {
			store = ratelimit.NewRedisStore(client)
		}
	}

	logger.Info("rate limiting enabled",
		zap.Int("requests", cfg.Requests),
		zap.Duration("window", cfg.Window))

	return ratelimit.NewLimiter(store, cfg.Requests, cfg.Window)
}
