// Package speech generates speeches from structured briefs.
package speech

import (
	"context"
	"strings"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/pipeline"
	"github.com/davidbz/orator/internal/prompt"
)

// Stage names of the general speech pipeline.
const (
	StageKnowledgeGaps = "knowledge_gaps"
	StageOutline       = "speech_outline"
	StageFullSpeech    = "full_speech"
)

// GeneralSpeech is the output of the three-stage pipeline.
type GeneralSpeech struct {
	KnowledgeGaps string `json:"knowledge_gaps"`
	SpeechOutline string `json:"speech_outline"`
	FullSpeech    string `json:"full_speech"`
}

// GeneralBrief is the input of the three-stage pipeline.
type GeneralBrief struct {
	Topic    string `json:"topic"`
	Audience string `json:"audience"`
	Duration int    `json:"duration"`
}

// EducationalBrief describes an educational speech. KeyPoints is optional.
type EducationalBrief struct {
	Topic     string   `json:"topic"`
	Audience  string   `json:"audience"`
	KeyPoints []string `json:"key_points"`
	Duration  int      `json:"duration"`
}

// ProductLaunchBrief describes a product launch speech.
type ProductLaunchBrief struct {
	ProductName    string   `json:"product_name"`
	Features       []string `json:"features"`
	TargetAudience string   `json:"target_audience"`
	CallToAction   string   `json:"call_to_action"`
	Duration       int      `json:"duration"`
}

// StorytellingBrief describes an inspirational storytelling speech.
type StorytellingBrief struct {
	StoryTheme   string   `json:"story_theme"`
	Audience     string   `json:"audience"`
	KeyTakeaways []string `json:"key_takeaways"`
	Duration     int      `json:"duration"`
}

// AwardAcceptanceBrief describes an award acceptance speech.
type AwardAcceptanceBrief struct {
	AwardName     string   `json:"award_name"`
	RecipientName string   `json:"recipient_name"`
	PeopleToThank []string `json:"people_to_thank"`
	Achievements  []string `json:"achievements"`
	Duration      int      `json:"duration"`
}

// FarewellBrief describes a farewell speech.
type FarewellBrief struct {
	EventContext     string   `json:"event_context"`
	Audience         string   `json:"audience"`
	KeyMemories      []string `json:"key_memories"`
	WordsOfGratitude []string `json:"words_of_gratitude"`
	Duration         int      `json:"duration"`
}

// Service writes speeches with a single model.
type Service struct {
	runner *pipeline.Runner
	model  string
}

// NewService creates a speech service.
func NewService(runner *pipeline.Runner, model string) *Service {
	return &Service{
		runner: runner,
		model:  model,
	}
}

// Generate runs knowledge gaps, outline and full speech in order. Stage
// outputs are returned verbatim.
func (s *Service) Generate(ctx context.Context, brief GeneralBrief) (*GeneralSpeech, error) {
	wordLimit := prompt.EstimateWordCount(brief.Duration)

	result, err := s.runner.Run(ctx, "",
		pipeline.Stage{
			Name:  StageKnowledgeGaps,
			Model: s.model,
			Build: func(string) prompt.Prompt {
				return prompt.KnowledgeGaps(brief.Topic, brief.Audience)
			},
		},
		pipeline.Stage{
			Name:  StageOutline,
			Model: s.model,
			Build: prompt.Outline,
		},
		pipeline.Stage{
			Name:  StageFullSpeech,
			Model: s.model,
			Build: func(outline string) prompt.Prompt {
				return prompt.FullSpeech(outline, wordLimit)
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return &GeneralSpeech{
		KnowledgeGaps: result.Stages[0].Output,
		SpeechOutline: result.Stages[1].Output,
		FullSpeech:    result.Stages[2].Output,
	}, nil
}

// Educational writes an educational speech.
func (s *Service) Educational(ctx context.Context, brief EducationalBrief) (string, error) {
	return s.single(ctx, "educational_speech",
		prompt.EducationalSpeech(brief.Topic, brief.Audience, brief.KeyPoints, brief.Duration))
}

// ProductLaunch writes a product launch speech.
func (s *Service) ProductLaunch(ctx context.Context, brief ProductLaunchBrief) (string, error) {
	return s.single(ctx, "product_launch_speech",
		prompt.ProductLaunchSpeech(brief.ProductName, brief.Features, brief.TargetAudience, brief.CallToAction, brief.Duration))
}

// Storytelling writes an inspirational storytelling speech.
func (s *Service) Storytelling(ctx context.Context, brief StorytellingBrief) (string, error) {
	return s.single(ctx, "storytelling_speech",
		prompt.InspirationalStorytellingSpeech(brief.StoryTheme, brief.Audience, brief.KeyTakeaways, brief.Duration))
}

// AwardAcceptance writes an award acceptance speech.
func (s *Service) AwardAcceptance(ctx context.Context, brief AwardAcceptanceBrief) (string, error) {
	return s.single(ctx, "award_acceptance_speech",
		prompt.AwardAcceptanceSpeech(brief.AwardName, brief.RecipientName, brief.PeopleToThank, brief.Achievements, brief.Duration))
}

// Farewell writes a farewell speech.
func (s *Service) Farewell(ctx context.Context, brief FarewellBrief) (string, error) {
	return s.single(ctx, "farewell_speech",
		prompt.FarewellSpeech(brief.EventContext, brief.Audience, brief.KeyMemories, brief.WordsOfGratitude, brief.Duration))
}

// single runs a one-stage pipeline and trims the speech.
func (s *Service) single(ctx context.Context, name string, p prompt.Prompt) (string, error) {
	result, err := s.runner.Run(ctx, "", pipeline.Stage{
		Name:  name,
		Model: s.model,
		Build: func(string) prompt.Prompt { return p },
		Post:  strings.TrimSpace,
	})
	if err != nil {
		return "", err
	}
	return result.Output(), nil
}

// Validate rejects blank text fields.
func (b GeneralBrief) Validate() error {
	return domain.RequireText("topic", b.Topic, "audience", b.Audience)
}

// Validate rejects blank text fields.
func (b EducationalBrief) Validate() error {
	return domain.RequireText("topic", b.Topic, "audience", b.Audience)
}

// Validate rejects blank text fields.
func (b ProductLaunchBrief) Validate() error {
	return domain.RequireText(
		"product_name", b.ProductName,
		"target_audience", b.TargetAudience,
		"call_to_action", b.CallToAction,
	)
}

// Validate rejects blank text fields.
func (b StorytellingBrief) Validate() error {
	return domain.RequireText("story_theme", b.StoryTheme, "audience", b.Audience)
}

// Validate rejects blank text fields.
func (b AwardAcceptanceBrief) Validate() error {
	return domain.RequireText("award_name", b.AwardName, "recipient_name", b.RecipientName)
}

// Validate rejects blank text fields.
func (b FarewellBrief) Validate() error {
	return domain.RequireText("event_context", b.EventContext, "audience", b.Audience)
}
