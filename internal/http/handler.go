package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/http/middleware"
	"github.com/davidbz/orator/internal/language"
	"github.com/davidbz/orator/internal/observability"
	"github.com/davidbz/orator/internal/speech"
)

const welcomeMessage = "Welcome to the AI_Volution API!"

//nolint:gochecknoglobals // read-only catalogue
var endpointCatalogue = map[string]string{
	"/detect-language/":                            "Detect the language of input text.",
	"/translate/":                                  "Translate text from one language to another.",
	"/enhance-text/":                               "Enhance the grammar and style of input text.",
	"/generate-speech/":                            "Generate a general-purpose speech.",
	"/generate-educational-speech/":                "Generate an educational speech.",
	"/generate-product-launch-speech/":             "Generate a product launch speech.",
	"/generate-inspirational-storytelling-speech/": "Generate an inspirational storytelling speech.",
	"/generate-award-acceptance-speech/":           "Generate an award acceptance speech.",
	"/generate-farewell-speech/":                   "Generate a farewell speech.",
	"/translate-hi-to-en/":                         "Correct Hindi text and translate it to English.",
	"/translate-en-to-hi/":                         "Correct English text and translate it to Hindi.",
	"/correct-grammar/":                            "Correct the grammar of English or Hindi text.",
	"/correct-hindi-grammar/":                      "Correct the grammar of Hindi text.",
}

// Handler handles HTTP requests.
type Handler struct {
	speech   *speech.Service
	language *language.Service
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(speechService *speech.Service, languageService *language.Service) *Handler {
	return &Handler{
		speech:   speechService,
		language: languageService,
	}
}

// HandleRoot returns the welcome message and endpoint catalogue.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message":   welcomeMessage,
		"endpoints": endpointCatalogue,
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleDetectLanguage returns the detected ISO 639-1 code.
func (h *Handler) HandleDetectLanguage(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	h.serveText(w, r, &req, "detected_language", func(ctx context.Context) (string, error) {
		return h.language.Detect(ctx, req.Text)
	}, "text")
}

// HandleTranslate detects the source language and translates to target_lang.
func (h *Handler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	h.serveText(w, r, &req, "translated_text", func(ctx context.Context) (string, error) {
		return h.language.Translate(ctx, req.Text, req.TargetLang)
	}, "text", "target_lang")
}

// HandleEnhanceText corrects and polishes text.
func (h *Handler) HandleEnhanceText(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	h.serveText(w, r, &req, "enhanced_text", func(ctx context.Context) (string, error) {
		return h.language.Enhance(ctx, req.Text, req.Lang)
	}, "text", "lang")
}

// HandleGenerateSpeech runs the three-stage speech pipeline.
func (h *Handler) HandleGenerateSpeech(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var brief speech.GeneralBrief
	if err := decode(r, &brief, "topic", "audience", "duration"); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.speech.Generate(ctx, brief)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// HandleEducationalSpeech writes an educational speech.
func (h *Handler) HandleEducationalSpeech(w http.ResponseWriter, r *http.Request) {
	var brief speech.EducationalBrief
	h.serveText(w, r, &brief, "speech", func(ctx context.Context) (string, error) {
		return h.speech.Educational(ctx, brief)
	}, "topic", "audience", "duration")
}

// HandleProductLaunchSpeech writes a product launch speech.
func (h *Handler) HandleProductLaunchSpeech(w http.ResponseWriter, r *http.Request) {
	var brief speech.ProductLaunchBrief
	h.serveText(w, r, &brief, "speech", func(ctx context.Context) (string, error) {
		return h.speech.ProductLaunch(ctx, brief)
	}, "product_name", "features", "target_audience", "call_to_action", "duration")
}

// HandleStorytellingSpeech writes an inspirational storytelling speech.
func (h *Handler) HandleStorytellingSpeech(w http.ResponseWriter, r *http.Request) {
	var brief speech.StorytellingBrief
	h.serveText(w, r, &brief, "speech", func(ctx context.Context) (string, error) {
		return h.speech.Storytelling(ctx, brief)
	}, "story_theme", "audience", "key_takeaways", "duration")
}

// HandleAwardAcceptanceSpeech writes an award acceptance speech.
func (h *Handler) HandleAwardAcceptanceSpeech(w http.ResponseWriter, r *http.Request) {
	var brief speech.AwardAcceptanceBrief
	h.serveText(w, r, &brief, "speech", func(ctx context.Context) (string, error) {
		return h.speech.AwardAcceptance(ctx, brief)
	}, "award_name", "recipient_name", "people_to_thank", "achievements", "duration")
}

// HandleFarewellSpeech writes a farewell speech.
func (h *Handler) HandleFarewellSpeech(w http.ResponseWriter, r *http.Request) {
	var brief speech.FarewellBrief
	h.serveText(w, r, &brief, "speech", func(ctx context.Context) (string, error) {
		return h.speech.Farewell(ctx, brief)
	}, "event_context", "audience", "key_memories", "words_of_gratitude", "duration")
}

// HandleTranslateHindiToEnglish corrects Hindi text and translates it to English.
func (h *Handler) HandleTranslateHindiToEnglish(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	h.serveCorrection(w, r, &req, "translated_text", func(ctx context.Context) (*language.Result, error) {
		return h.language.TranslateHindiToEnglish(ctx, req.Text)
	}, "text")
}

// HandleTranslateEnglishToHindi corrects English text and translates it to Hindi.
func (h *Handler) HandleTranslateEnglishToHindi(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	h.serveCorrection(w, r, &req, "translated_text", func(ctx context.Context) (*language.Result, error) {
		return h.language.TranslateEnglishToHindi(ctx, req.Text)
	}, "text")
}

// HandleCorrectGrammar corrects English or Hindi text.
func (h *Handler) HandleCorrectGrammar(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	h.serveCorrection(w, r, &req, "corrected_text", func(ctx context.Context) (*language.Result, error) {
		return h.language.CorrectGrammar(ctx, req.Text, req.Lang)
	}, "text", "lang")
}

// HandleCorrectHindiGrammar corrects Hindi text only.
func (h *Handler) HandleCorrectHindiGrammar(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	h.serveCorrection(w, r, &req, "corrected_text", func(ctx context.Context) (*language.Result, error) {
		return h.language.CorrectHindiGrammar(ctx, req.Text, req.Lang)
	}, "text", "lang")
}

// serveText decodes dst, runs fn and writes its text under field.
func (h *Handler) serveText(
	w http.ResponseWriter,
	r *http.Request,
	dst validator,
	field string,
	fn func(context.Context) (string, error),
	required ...string,
) {
	ctx := r.Context()

	if err := decode(r, dst, required...); err != nil {
		writeError(ctx, w, err)
		return
	}

	text, err := fn(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{field: text})
}

// serveCorrection is serveText for results that may be degraded.
func (h *Handler) serveCorrection(
	w http.ResponseWriter,
	r *http.Request,
	dst validator,
	field string,
	fn func(context.Context) (*language.Result, error),
	required ...string,
) {
	ctx := r.Context()

	if err := decode(r, dst, required...); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := fn(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if result.Degraded {
		w.Header().Set(middleware.DegradedHeader, "true")
	}
	writeJSON(ctx, w, http.StatusOK, map[string]string{field: result.Text})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status is already written, only log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}

// writeError maps err to a status. Only validation messages reach the caller.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := observability.FromContext(ctx)

	var (
		status  int
		message string
	)
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status, message = http.StatusBadRequest, err.Error()
		logger.Info("request rejected", observability.Error(err))
	case domain.KindUpstream:
		status, message = http.StatusBadGateway, "completion service failed"
		logger.Error("completion failed", observability.Error(err))
	default:
		status, message = http.StatusInternalServerError, "internal error"
		logger.Error("request failed", observability.Error(err))
	}

	writeJSON(ctx, w, status, map[string]string{"error": message})
}
