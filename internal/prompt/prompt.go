// Package prompt renders the system/user instruction pairs sent to the
// completion service. Every builder is a pure function of its inputs: values
// are interpolated verbatim, without escaping.
package prompt

import (
	"strings"

	"github.com/davidbz/orator/internal/domain"
)

const (
	// WordsPerMinute is the average speaking rate used to size speeches.
	WordsPerMinute = 150

	// DefaultTemperature is the sampling temperature used by every prompt.
	DefaultTemperature = 0.7

	// NotSpecified stands in for an omitted optional field.
	NotSpecified = "Not specified"

	listSeparator = ", "
)

// Sampling holds the per-call sampling parameters.
type Sampling struct {
	Temperature float64
	MaxTokens   int // zero leaves the limit to the provider
}

// Prompt is one system/user instruction pair.
type Prompt struct {
	System   string
	User     string
	Sampling Sampling
}

// Messages returns the ordered chat messages for the prompt.
func (p Prompt) Messages() []domain.Message {
	return []domain.Message{
		{Role: domain.RoleSystem, Content: p.System},
		{Role: domain.RoleUser, Content: p.User},
	}
}

// Request builds a completion request for model. A non-zero temperature
// overrides the prompt's own.
func (p Prompt) Request(model string, temperature float64) *domain.CompletionRequest {
	if temperature == 0 {
		temperature = p.Sampling.Temperature
	}
	return &domain.CompletionRequest{
		Model:       model,
		Messages:    p.Messages(),
		Temperature: temperature,
		MaxTokens:   p.Sampling.MaxTokens,
	}
}

// EstimateWordCount converts a speaking duration in minutes to a word budget.
// Zero and negative durations pass through unchanged.
func EstimateWordCount(durationMinutes int) int {
	return durationMinutes * WordsPerMinute
}

// JoinList joins items with ", ", preserving order.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// JoinOptionalList is JoinList, rendering an empty list as NotSpecified.
func JoinOptionalList(items []string) string {
	if len(items) == 0 {
		return NotSpecified
	}
	return JoinList(items)
}

// lines joins template lines with newlines.
func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

func defaultSampling() Sampling {
	return Sampling{Temperature: DefaultTemperature}
}
