// Package language detects, translates, enhances and grammar-corrects text.
package language

import (
	"context"
	"strings"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/pipeline"
	"github.com/davidbz/orator/internal/prompt"
)

// Models selects the completion model used for each kind of stage.
type Models struct {
	// Default serves detection, free translation and enhancement.
	Default string
	// Translation serves the fixed hi<->en machine translation stages.
	Translation string
	// Correction serves English grammar correction.
	Correction string
}

// Result is the outcome of a correction or round-trip translation.
type Result struct {
	Text string
	// Degraded is set when the correction stage failed and its input was kept.
	Degraded bool
}

// Service runs the language pipelines.
type Service struct {
	runner *pipeline.Runner
	models Models
}

// NewService creates a language service. Empty Translation and Correction
// models fall back to Default.
func NewService(runner *pipeline.Runner, models Models) *Service {
	if models.Translation == "" {
		models.Translation = models.Default
	}
	if models.Correction == "" {
		models.Correction = models.Default
	}
	return &Service{
		runner: runner,
		models: models,
	}
}

// Detect returns the lower-cased language code reported by the model.
func (s *Service) Detect(ctx context.Context, text string) (string, error) {
	result, err := s.runner.Run(ctx, text, s.detectStage())
	if err != nil {
		return "", err
	}
	return result.Output(), nil
}

// Translate detects the source language of text and translates it to target.
func (s *Service) Translate(ctx context.Context, text, target string) (string, error) {
	result, err := s.runner.Run(ctx, text,
		s.detectStage(),
		pipeline.Stage{
			Name:  "translate",
			Model: s.models.Default,
			Build: func(source string) prompt.Prompt {
				return prompt.Translate(text, source, target)
			},
			Post: strings.TrimSpace,
		},
	)
	if err != nil {
		return "", err
	}
	return result.Output(), nil
}

// Enhance corrects and polishes text. lang "hi" selects the Hindi
// instruction; every other value is treated as English.
func (s *Service) Enhance(ctx context.Context, text, lang string) (string, error) {
	result, err := s.runner.Run(ctx, text, pipeline.Stage{
		Name:  "enhance",
		Model: s.models.Default,
		Build: func(input string) prompt.Prompt { return prompt.Enhance(input, lang) },
		Post:  strings.TrimSpace,
	})
	if err != nil {
		return "", err
	}
	return result.Output(), nil
}

// CorrectEnglish fixes the grammar of English text.
func (s *Service) CorrectEnglish(ctx context.Context, text string) (*Result, error) {
	return s.run(ctx, text, s.correctStage())
}

// CorrectHindi fixes Hindi grammar by translating to English, correcting
// there and translating back.
func (s *Service) CorrectHindi(ctx context.Context, text string) (*Result, error) {
	return s.run(ctx, text, s.correctHindiStages()...)
}

// TranslateHindiToEnglish corrects Hindi text and translates it to English.
func (s *Service) TranslateHindiToEnglish(ctx context.Context, text string) (*Result, error) {
	final := s.machineTranslateStage(prompt.Hindi, prompt.English)
	final.Name += "_final"
	stages := append(s.correctHindiStages(), final)
	return s.run(ctx, text, stages...)
}

// TranslateEnglishToHindi corrects English text and translates it to Hindi.
func (s *Service) TranslateEnglishToHindi(ctx context.Context, text string) (*Result, error) {
	return s.run(ctx, text,
		s.correctStage(),
		s.machineTranslateStage(prompt.English, prompt.Hindi),
	)
}

// CorrectGrammar corrects English ("en") or Hindi ("hi") text.
func (s *Service) CorrectGrammar(ctx context.Context, text, lang string) (*Result, error) {
	switch lang {
	case prompt.English:
		return s.CorrectEnglish(ctx, text)
	case prompt.Hindi:
		return s.CorrectHindi(ctx, text)
	default:
		return nil, domain.Validation("Unsupported language. Use 'en' for English or 'hi' for Hindi.")
	}
}

// CorrectHindiGrammar corrects Hindi text and rejects any other lang.
func (s *Service) CorrectHindiGrammar(ctx context.Context, text, lang string) (*Result, error) {
	if lang != prompt.Hindi {
		return nil, domain.Validation("This endpoint is only for Hindi grammar correction. Use 'hi' as the language code.")
	}
	return s.CorrectHindi(ctx, text)
}

func (s *Service) run(ctx context.Context, text string, stages ...pipeline.Stage) (*Result, error) {
	result, err := s.runner.Run(ctx, text, stages...)
	if err != nil {
		return nil, err
	}
	return &Result{Text: result.Output(), Degraded: result.Degraded()}, nil
}

func (s *Service) detectStage() pipeline.Stage {
	return pipeline.Stage{
		Name:  "detect_language",
		Model: s.models.Default,
		Build: prompt.DetectLanguage,
		Post: func(code string) string {
			return strings.ToLower(strings.TrimSpace(code))
		},
	}
}

func (s *Service) correctStage() pipeline.Stage {
	return pipeline.Stage{
		Name:     "correct_english",
		Model:    s.models.Correction,
		Build:    prompt.CorrectEnglish,
		Post:     strings.TrimSpace,
		Fallback: true,
	}
}

func (s *Service) correctHindiStages() []pipeline.Stage {
	return []pipeline.Stage{
		s.machineTranslateStage(prompt.Hindi, prompt.English),
		s.correctStage(),
		s.machineTranslateStage(prompt.English, prompt.Hindi),
	}
}

func (s *Service) machineTranslateStage(from, to string) pipeline.Stage {
	return pipeline.Stage{
		Name:  "translate_" + from + "_" + to,
		Model: s.models.Translation,
		Build: func(input string) prompt.Prompt {
			return prompt.MachineTranslate(input, from, to)
		},
		Post: strings.TrimSpace,
	}
}
