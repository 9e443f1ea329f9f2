package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/orator/internal/observability"
)

// CompletionService routes completion requests to providers by model.
type CompletionService struct {
	registry       ProviderRegistry
	costCalculator CostCalculator
	cache          CompletionCache
	events         EventPublisher
	cacheTTL       time.Duration
}

// CompletionServiceParams holds the collaborators of a CompletionService.
// Cache and Events are optional.
type CompletionServiceParams struct {
	Registry       ProviderRegistry
	CostCalculator CostCalculator
	Cache          CompletionCache
	Events         EventPublisher
	CacheTTL       time.Duration
}

// NewCompletionService creates a new completion service (DI constructor).
func NewCompletionService(params CompletionServiceParams) *CompletionService {
	return &CompletionService{
		registry:       params.Registry,
		costCalculator: params.CostCalculator,
		cache:          params.Cache,
		events:         params.Events,
		cacheTTL:       params.CacheTTL,
	}
}

// CompleteByModel handles a completion request with automatic provider routing.
func (s *CompletionService) CompleteByModel(
	ctx context.Context,
	req *CompletionRequest,
) (*CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if req.Model == "" {
		return nil, errors.New("model cannot be empty")
	}

	logger := observability.FromContext(ctx).With(observability.String("model", req.Model))

	var cacheKey string
	if s.cache != nil {
		cacheKey = CacheKey(req)
		cached, cacheErr := s.cache.Get(ctx, cacheKey)
		switch {
		case cacheErr == nil && cached != nil:
			logger.Debug("cache hit", observability.String("cache_key", cacheKey))
			return cached, nil
		case cacheErr != nil && !errors.Is(cacheErr, ErrCacheMiss):
			logger.Warn("cache get failed, continuing without cache", observability.Error(cacheErr))
		}
	}

	provider, err := s.registry.GetByModel(ctx, req.Model)
	if err != nil {
		return nil, fmt.Errorf("provider routing failed: %w", err)
	}

	started := time.Now()
	response, err := provider.Complete(ctx, req)
	if err != nil {
		return nil, Upstream("completion failed", err)
	}

	if s.costCalculator != nil {
		cost, _ := s.costCalculator.Calculate(ctx, response.Model, response.Usage)
		response.Usage.Cost = cost
	}

	logger.Info("completion finished",
		observability.String("provider", provider.Name()),
		observability.Int("total_tokens", response.Usage.TotalTokens),
		observability.Duration("latency", time.Since(started)))

	if s.events != nil {
		s.events.Publish(ctx, "completion.finished", map[string]interface{}{
			"provider":          provider.Name(),
			"model":             response.Model,
			"prompt_tokens":     response.Usage.PromptTokens,
			"completion_tokens": response.Usage.CompletionTokens,
			"cost":              response.Usage.Cost,
		})
	}

	if s.cache != nil {
		if setErr := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); setErr != nil {
			logger.Warn("failed to store in cache", observability.Error(setErr))
		}
	}

	return response, nil
}

// ResolveModels checks that every model is served by a registered provider.
func (s *CompletionService) ResolveModels(ctx context.Context, models ...string) error {
	for _, model := range models {
		if _, err := s.registry.GetByModel(ctx, model); err != nil {
			return fmt.Errorf("model %q cannot be resolved: %w", model, err)
		}
	}
	return nil
}
