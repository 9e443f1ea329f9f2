package groq

import (
	"context"
	"fmt"

	"github.com/davidbz/orator/internal/domain"
)

// RegisterPricing registers Groq model pricing (USD per 1M tokens) with the registry.
func RegisterPricing(ctx context.Context, registry domain.PricingRegistry) error {
	models := map[string]domain.PricingConfig{
		"llama-3.3-70b-versatile": {
			InputCostPer1M:  0.59,
			OutputCostPer1M: 0.79,
		},
		"llama-3.1-8b-instant": {
			InputCostPer1M:  0.05,
			OutputCostPer1M: 0.08,
		},
		"gemma2-9b-it": {
			InputCostPer1M:  0.20,
			OutputCostPer1M: 0.20,
		},
	}

	for model, config := range models {
		if err := registry.RegisterPricing(ctx, model, config); err != nil {
			return fmt.Errorf("failed to register pricing for model %s: %w", model, err)
		}
	}

	return nil
}
