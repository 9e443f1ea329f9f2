// Package pipeline runs fixed sequences of completion calls in which each
// stage's prompt embeds the previous stage's output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/observability"
	"github.com/davidbz/orator/internal/prompt"
)

// Completer issues a single completion call.
type Completer interface {
	CompleteByModel(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error)
}

// Stage is one completion call.
type Stage struct {
	Name  string
	Model string

	// Build renders the prompt from the previous stage's output (or the seed).
	Build func(input string) prompt.Prompt

	// Post transforms the raw completion text. Nil keeps it verbatim.
	Post func(output string) string

	// Fallback lets the stage pass its input through when the call fails,
	// marking the result degraded instead of failing the run.
	Fallback bool
}

// StageResult records the outcome of a stage.
type StageResult struct {
	Name     string
	Output   string
	Degraded bool
}

// Result holds the stage results of a run, in order.
type Result struct {
	Stages []StageResult
}

// Output returns the last stage's output.
func (r *Result) Output() string {
	if len(r.Stages) == 0 {
		return ""
	}
	return r.Stages[len(r.Stages)-1].Output
}

// Degraded reports whether any stage fell back to its input.
func (r *Result) Degraded() bool {
	for _, stage := range r.Stages {
		if stage.Degraded {
			return true
		}
	}
	return false
}

// Runner executes stages strictly one after another.
type Runner struct {
	completer   Completer
	temperature float64
	events      domain.EventPublisher
}

// NewRunner creates a runner. A non-zero temperature overrides the prompts' own.
func NewRunner(completer Completer, temperature float64, events domain.EventPublisher) *Runner {
	return &Runner{
		completer:   completer,
		temperature: temperature,
		events:      events,
	}
}

// Run executes stages in order, feeding each output to the next stage. The
// first stage receives seed. The first non-fallback failure aborts the run.
func (r *Runner) Run(ctx context.Context, seed string, stages ...Stage) (*Result, error) {
	if len(stages) == 0 {
		return nil, errors.New("pipeline has no stages")
	}

	result := &Result{Stages: make([]StageResult, 0, len(stages))}
	input := seed

	for _, stage := range stages {
		stageResult, err := r.runStage(ctx, stage, input)
		if err != nil {
			return nil, err
		}
		result.Stages = append(result.Stages, stageResult)
		input = stageResult.Output
	}

	return result, nil
}

func (r *Runner) runStage(ctx context.Context, stage Stage, input string) (StageResult, error) {
	ctx = observability.WithStage(ctx, stage.Name)
	logger := observability.FromContext(ctx)

	started := time.Now()
	resp, err := r.completer.CompleteByModel(ctx, stage.Build(input).Request(stage.Model, r.temperature))
	if err != nil {
		if stage.Fallback && ctx.Err() == nil {
			logger.Warn("stage failed, passing input through", observability.Error(err))
			if r.events != nil {
				r.events.Publish(ctx, "pipeline.stage.degraded", map[string]interface{}{
					"stage": stage.Name,
					"model": stage.Model,
				})
			}
			return StageResult{Name: stage.Name, Output: input, Degraded: true}, nil
		}
		return StageResult{}, fmt.Errorf("stage %s: %w", stage.Name, err)
	}

	output := resp.Content
	if stage.Post != nil {
		output = stage.Post(output)
	}

	logger.Debug("stage completed",
		observability.Duration("latency", time.Since(started)),
		observability.Int("output_length", len(output)))

	return StageResult{Name: stage.Name, Output: output}, nil
}
