// Package echo provides an offline provider that answers with the prompt it was given.
// Responses are deterministic, which makes it suitable for local development and
// for exercising multi-stage pipelines without a completion service.
package echo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/observability"
)

const providerName = "echo"

// Config contains echo provider settings.
type Config struct {
	Enabled bool   `env:"ECHO_PROVIDER_ENABLED" envDefault:"false"`
	Model   string `env:"ECHO_MODEL"            envDefault:"echo"`
}

// Provider implements the domain.Provider interface for offline use.
type Provider struct {
	name  string
	model string
}

// NewProvider creates a new echo provider serving the given model id.
func NewProvider(model string) *Provider {
	if model == "" {
		model = providerName
	}
	return &Provider{
		name:  providerName,
		model: model,
	}
}

// Complete returns the last user message, trimmed.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if req.Model != p.model {
		return nil, fmt.Errorf("model %s is not supported by echo provider", req.Model)
	}

	content := lastUserMessage(req.Messages)
	promptTokens := countTokens(req.Messages)
	completionTokens := len(strings.Fields(content))

	observability.FromContext(ctx).Debug("echo completed",
		observability.Int("prompt_tokens", promptTokens),
		observability.Int("completion_tokens", completionTokens),
	)

	return &domain.CompletionResponse{
		ID:       responseID(req),
		Model:    req.Model,
		Provider: p.name,
		Content:  content,
		Usage: domain.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
		FinishTime: time.Now(),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// IsModelSupported checks if the provider supports the given model.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return model == p.model
}

// SupportedModels returns the single model this provider serves.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return []string{p.model}
}

func lastUserMessage(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}

// countTokens performs simple word-based token counting.
func countTokens(messages []domain.Message) int {
	total := 0
	for _, msg := range messages {
		total += len(strings.Fields(msg.Content))
	}
	return total
}

func responseID(req *domain.CompletionRequest) string {
	hash := sha256.Sum256([]byte(domain.CacheKey(req)))
	return "echo-" + hex.EncodeToString(hash[:8])
}
