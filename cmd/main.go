package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	rediscache "github.com/davidbz/orator/internal/cache/redis"
	"github.com/davidbz/orator/internal/config"
	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/http"
	"github.com/davidbz/orator/internal/http/middleware"
	"github.com/davidbz/orator/internal/language"
	"github.com/davidbz/orator/internal/observability"
	"github.com/davidbz/orator/internal/pipeline"
	"github.com/davidbz/orator/internal/provider/echo"
	"github.com/davidbz/orator/internal/provider/gemini"
	"github.com/davidbz/orator/internal/provider/groq"
	"github.com/davidbz/orator/internal/provider/registry"
	"github.com/davidbz/orator/internal/speech"
)

const shutdownTimeout = 10 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, logger *zap.Logger) {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Fatalf("Server failed to shut down: %v", err)
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
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
	if err := container.Invoke(func(cfg *config.Config) error {
		return cfg.Validate()
	}); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Providers. A nil provider is not configured and is skipped at registration.
	if err := container.Provide(func(cfg *groq.Config) (*groq.Provider, error) {
		if cfg.APIKey == "" {
			return nil, nil
		}
		return groq.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide Groq provider: %v", err)
	}
	if err := container.Provide(func(cfg *gemini.Config) (*gemini.Provider, error) {
		if cfg.APIKey == "" {
			return nil, nil
		}
		return gemini.NewProvider(context.Background(), *cfg)
	}); err != nil {
		log.Fatalf("Failed to provide Gemini provider: %v", err)
	}
	if err := container.Provide(func(cfg *echo.Config) *echo.Provider {
		if !cfg.Enabled {
			return nil
		}
		return echo.NewProvider(cfg.Model)
	}); err != nil {
		log.Fatalf("Failed to provide echo provider: %v", err)
	}

	// Register providers with registry (invoked for side effects)
	if err := container.Invoke(func(
		reg domain.ProviderRegistry,
		groqProvider *groq.Provider,
		geminiProvider *gemini.Provider,
		echoProvider *echo.Provider,
	) error {
		ctx := context.Background()

		if groqProvider != nil {
			if err := reg.Register(ctx, groqProvider); err != nil {
				return fmt.Errorf("failed to register Groq provider: %w", err)
			}
		}
		if geminiProvider != nil {
			if err := reg.Register(ctx, geminiProvider); err != nil {
				return fmt.Errorf("failed to register Gemini provider: %w", err)
			}
		}
		if echoProvider != nil {
			if err := reg.Register(ctx, echoProvider); err != nil {
				return fmt.Errorf("failed to register echo provider: %w", err)
			}
		}

		return nil
	}); err != nil {
		log.Fatalf("Failed to register providers: %v", err)
	}

	// Pricing
	if err := container.Provide(func() (domain.PricingRegistry, error) {
		pricing := domain.NewInMemoryPricingRegistry()
		if err := groq.RegisterPricing(context.Background(), pricing); err != nil {
			return nil, err
		}
		return pricing, nil
	}); err != nil {
		log.Fatalf("Failed to provide pricing registry: %v", err)
	}
	if err := container.Provide(func(pricing domain.PricingRegistry) domain.CostCalculator {
		return domain.NewStandardCostCalculator(pricing)
	}); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}

	// Completion cache, nil when disabled
	if err := container.Provide(func(cfg *rediscache.Config) (domain.CompletionCache, error) {
		if !cfg.Enabled {
			return nil, nil
		}
		client, err := rediscache.Connect(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return rediscache.NewCompletionCache(client), nil
	}); err != nil {
		log.Fatalf("Failed to provide completion cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(
		reg domain.ProviderRegistry,
		costCalculator domain.CostCalculator,
		cache domain.CompletionCache,
		events domain.EventPublisher,
		cacheCfg *rediscache.Config,
	) *domain.CompletionService {
		return domain.NewCompletionService(domain.CompletionServiceParams{
			Registry:       reg,
			CostCalculator: costCalculator,
			Cache:          cache,
			Events:         events,
			CacheTTL:       cacheCfg.TTL,
		})
	}); err != nil {
		log.Fatalf("Failed to provide completion service: %v", err)
	}
	if err := container.Invoke(func(service *domain.CompletionService, cfg *config.PipelineConfig) error {
		return service.ResolveModels(context.Background(), cfg.Models()...)
	}); err != nil {
		log.Fatalf("Pipeline model is not served by any provider: %v", err)
	}

	if err := container.Provide(func(
		service *domain.CompletionService,
		cfg *config.PipelineConfig,
		events domain.EventPublisher,
	) *pipeline.Runner {
		return pipeline.NewRunner(service, cfg.Temperature, events)
	}); err != nil {
		log.Fatalf("Failed to provide pipeline runner: %v", err)
	}
	if err := container.Provide(func(runner *pipeline.Runner, cfg *config.PipelineConfig) *speech.Service {
		return speech.NewService(runner, cfg.Model)
	}); err != nil {
		log.Fatalf("Failed to provide speech service: %v", err)
	}
	if err := container.Provide(func(runner *pipeline.Runner, cfg *config.PipelineConfig) *language.Service {
		return language.NewService(runner, language.Models{
			Default:     cfg.Model,
			Translation: cfg.TranslationModel,
			Correction:  cfg.CorrectionModel,
		})
	}); err != nil {
		log.Fatalf("Failed to provide language service: %v", err)
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
