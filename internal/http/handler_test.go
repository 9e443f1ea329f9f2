package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/orator/internal/config"
	"github.com/davidbz/orator/internal/domain"
	apphttp "github.com/davidbz/orator/internal/http"
	"github.com/davidbz/orator/internal/http/middleware"
	"github.com/davidbz/orator/internal/language"
	"github.com/davidbz/orator/internal/mocks"
	"github.com/davidbz/orator/internal/pipeline"
	"github.com/davidbz/orator/internal/prompt"
	"github.com/davidbz/orator/internal/speech"
)

func newRoutes(completer *mocks.Completer) http.Handler {
	runner := pipeline.NewRunner(completer, prompt.DefaultTemperature, nil)
	handler := apphttp.NewHandler(
		speech.NewService(runner, "test-model"),
		language.NewService(runner, language.Models{Default: "test-model"}),
	)
	server := apphttp.NewServer(&config.ServerConfig{Port: 0}, handler, middleware.Trace())
	return server.Routes()
}

func do(t *testing.T, routes http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestGenerateSpeech_ThreeStagesInOrder(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.OnSystem(prompt.KnowledgeGaps("", "").System).Return(mocks.Reply("gaps"), nil).Once()
	completer.OnSystem(prompt.Outline("").System).Return(mocks.Reply("outline"), nil).Once()
	completer.OnSystem(prompt.FullSpeech("", 0).System).Return(mocks.Reply("speech"), nil).Once()

	w, body := do(t, newRoutes(completer), http.MethodPost, "/generate-speech/",
		`{"topic":"AI","audience":"students","duration":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
	require.Equal(t, map[string]any{
		"knowledge_gaps": "gaps",
		"speech_outline": "outline",
		"full_speech":    "speech",
	}, body)

	requests := completer.Requests()
	require.Len(t, requests, 3)
	require.Contains(t, requests[2].Messages[1].Content, "under 300 words")
}

func TestGenerateSpeech_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing duration", body: `{"topic":"AI","audience":"students"}`, message: `field "duration" is required`},
		{name: "null topic", body: `{"topic":null,"audience":"students","duration":2}`, message: `field "topic" is required`},
		{name: "empty audience", body: `{"topic":"AI","audience":"","duration":2}`, message: `field "audience" cannot be empty`},
		{name: "wrong type", body: `{"topic":"AI","audience":"students","duration":"two"}`, message: `field "duration" must be of type int`},
		{name: "malformed", body: `{"topic":`, message: "request body must be a JSON object"},
		{name: "not an object", body: `["AI"]`, message: "request body must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := mocks.NewCompleter(t)

			w, body := do(t, newRoutes(completer), http.MethodPost, "/generate-speech/", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, tt.message, body["error"])
			require.Empty(t, completer.Requests())
		})
	}
}

func TestGenerateSpeech_AcceptsZeroDuration(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply("x"), nil).Times(3)

	w, _ := do(t, newRoutes(completer), http.MethodPost, "/generate-speech/",
		`{"topic":"AI","audience":"students","duration":0}`)

	require.Equal(t, http.StatusOK, w.Code)
}

// validBodies holds a well-formed request for every POST route.
//
//nolint:gochecknoglobals // test fixtures
var validBodies = map[string]string{
	"/detect-language/":                            `{"text":"hello"}`,
	"/translate/":                                  `{"text":"hello","target_lang":"hi"}`,
	"/enhance-text/":                               `{"text":"hello","lang":"en"}`,
	"/generate-speech/":                            `{"topic":"AI","audience":"students","duration":2}`,
	"/generate-educational-speech/":                `{"topic":"AI","audience":"students","duration":2}`,
	"/generate-product-launch-speech/":             `{"product_name":"Orbit","features":["fast"],"target_audience":"devs","call_to_action":"Try it","duration":1}`,
	"/generate-inspirational-storytelling-speech/": `{"story_theme":"grit","audience":"teams","key_takeaways":["a"],"duration":1}`,
	"/generate-award-acceptance-speech/":           `{"award_name":"MVP","recipient_name":"Sam","people_to_thank":["mom"],"achievements":["won"],"duration":1}`,
	"/generate-farewell-speech/":                   `{"event_context":"move","audience":"friends","key_memories":["trip"],"words_of_gratitude":["thanks"],"duration":1}`,
	"/translate-hi-to-en/":                         `{"text":"नमस्ते"}`,
	"/translate-en-to-hi/":                         `{"text":"hello"}`,
	"/correct-grammar/":                            `{"text":"नमस्ते","lang":"hi"}`,
	"/correct-hindi-grammar/":                      `{"text":"नमस्ते","lang":"hi"}`,
}

func TestCompletionFailure_AllRoutesReturnServerErrorWithoutLeaking(t *testing.T) {
	const secret = "invalid api key gsk-secret"

	failures := []struct {
		name   string
		err    error
		status int
	}{
		{name: "upstream", err: domain.Upstream("completion failed", errors.New(secret)), status: http.StatusBadGateway},
		{name: "unclassified", err: errors.New(secret), status: http.StatusInternalServerError},
	}

	require.Len(t, validBodies, 13)

	for path, body := range validBodies {
		for _, failure := range failures {
			t.Run(path+" "+failure.name, func(t *testing.T) {
				completer := mocks.NewCompleter(t)
				completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(nil, failure.err)

				w, decoded := do(t, newRoutes(completer), http.MethodPost, path, body)

				require.Equal(t, failure.status, w.Code)
				require.GreaterOrEqual(t, w.Code, http.StatusInternalServerError)
				require.NotContains(t, w.Body.String(), "gsk-secret")
				require.NotEmpty(t, decoded["error"])
			})
		}
	}
}

func TestTextFields_ValidatedOnDecodedValues(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{
			name:    "case-folded duplicate overrides with empty",
			path:    "/detect-language/",
			body:    `{"text":"hi","TEXT":""}`,
			message: `field "text" cannot be empty`,
		},
		{
			name:    "whitespace only",
			path:    "/detect-language/",
			body:    `{"text":"   "}`,
			message: `field "text" cannot be empty`,
		},
		{
			name:    "escaped blank",
			path:    "/enhance-text/",
			body:    `{"text":"\u0020\t","lang":"en"}`,
			message: `field "text" cannot be empty`,
		},
		{
			name:    "duplicate topic last wins",
			path:    "/generate-speech/",
			body:    `{"topic":"AI","Topic":" ","audience":"students","duration":2}`,
			message: `field "topic" cannot be empty`,
		},
		{
			name:    "blank target language",
			path:    "/translate/",
			body:    `{"text":"hello","target_lang":"  "}`,
			message: `field "target_lang" cannot be empty`,
		},
		{
			name:    "blank product field",
			path:    "/generate-product-launch-speech/",
			body:    `{"product_name":"Orbit","features":[],"target_audience":"devs","call_to_action":"","duration":1}`,
			message: `field "call_to_action" cannot be empty`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := mocks.NewCompleter(t)

			w, body := do(t, newRoutes(completer), http.MethodPost, tt.path, tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, tt.message, body["error"])
			require.Empty(t, completer.Requests())
		})
	}
}

func TestRequiredFields_MatchKeysCaseInsensitively(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply("en"), nil).Once()

	w, body := do(t, newRoutes(completer), http.MethodPost, "/detect-language/", `{"TEXT":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"detected_language": "en"}, body)
	require.Contains(t, completer.Requests()[0].Messages[1].Content, "hello")
}

func TestUnclassifiedFailure_IsInternalError(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.On("CompleteByModel", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider routing failed: no provider")).Once()

	w, body := do(t, newRoutes(completer), http.MethodPost, "/detect-language/", `{"text":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal error", body["error"])
}

func TestEducationalSpeech_OptionalKeyPoints(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply("\n# Talk\n"), nil).Once()

	w, body := do(t, newRoutes(completer), http.MethodPost, "/generate-educational-speech/",
		`{"topic":"AI","audience":"students","duration":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"speech": "# Talk"}, body)
	require.Contains(t, completer.Requests()[0].Messages[1].Content, "Key Points to Cover: Not specified")
}

func TestSpeechEndpoints_ListFields(t *testing.T) {
	tests := []struct {
		path     string
		body     string
		fragment string
	}{
		{
			path:     "/generate-product-launch-speech/",
			body:     `{"product_name":"Orbit","features":[],"target_audience":"devs","call_to_action":"Try it","duration":1}`,
			fragment: "Key Features: \n",
		},
		{
			path:     "/generate-inspirational-storytelling-speech/",
			body:     `{"story_theme":"grit","audience":"teams","key_takeaways":["a","b"],"duration":1}`,
			fragment: "Key Takeaways: a, b",
		},
		{
			path:     "/generate-award-acceptance-speech/",
			body:     `{"award_name":"MVP","recipient_name":"Sam","people_to_thank":["mom"],"achievements":["won"],"duration":1}`,
			fragment: "People/Organizations to Thank: mom",
		},
		{
			path:     "/generate-farewell-speech/",
			body:     `{"event_context":"move","audience":"friends","key_memories":["trip"],"words_of_gratitude":["thanks"],"duration":1}`,
			fragment: "Key Memories: trip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			completer := mocks.NewCompleter(t)
			completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply("speech"), nil).Once()

			w, body := do(t, newRoutes(completer), http.MethodPost, tt.path, tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, map[string]any{"speech": "speech"}, body)
			require.Contains(t, completer.Requests()[0].Messages[1].Content, tt.fragment)
		})
	}
}

func TestSpeechEndpoints_RequireLists(t *testing.T) {
	completer := mocks.NewCompleter(t)

	w, body := do(t, newRoutes(completer), http.MethodPost, "/generate-farewell-speech/",
		`{"event_context":"move","audience":"friends","words_of_gratitude":[],"duration":1}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `field "key_memories" is required`, body["error"])
}

func TestLanguageEndpoints(t *testing.T) {
	t.Run("detect", func(t *testing.T) {
		completer := mocks.NewCompleter(t)
		completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply(" EN\n"), nil).Once()

		w, body := do(t, newRoutes(completer), http.MethodPost, "/detect-language/", `{"text":"hello"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"detected_language": "en"}, body)
	})

	t.Run("translate", func(t *testing.T) {
		completer := mocks.NewCompleter(t)
		completer.OnSystem(prompt.DetectLanguage("").System).Return(mocks.Reply("en"), nil).Once()
		completer.OnSystem(prompt.Translate("", "", "").System).Return(mocks.Reply("hola"), nil).Once()

		w, body := do(t, newRoutes(completer), http.MethodPost, "/translate/", `{"text":"hello","target_lang":"es"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"translated_text": "hola"}, body)
	})

	t.Run("enhance hindi", func(t *testing.T) {
		completer := mocks.NewCompleter(t)
		completer.OnSystem(prompt.Enhance("", "hi").System).Return(mocks.Reply("बेहतर"), nil).Once()

		w, body := do(t, newRoutes(completer), http.MethodPost, "/enhance-text/", `{"text":"अच्छा","lang":"hi"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"enhanced_text": "बेहतर"}, body)
	})

	t.Run("enhance other language falls back to english", func(t *testing.T) {
		completer := mocks.NewCompleter(t)
		completer.OnSystem(prompt.Enhance("", "en").System).Return(mocks.Reply("Better."), nil).Once()

		w, _ := do(t, newRoutes(completer), http.MethodPost, "/enhance-text/", `{"text":"gud","lang":"fr"}`)

		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCorrectGrammar_DegradedHeader(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.OnSystem(prompt.CorrectEnglish("").System).
		Return(nil, domain.Upstream("completion failed", errors.New("down"))).Once()

	w, body := do(t, newRoutes(completer), http.MethodPost, "/correct-grammar/", `{"text":"he go","lang":"en"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "true", w.Header().Get(middleware.DegradedHeader))
	require.Equal(t, map[string]any{"corrected_text": "he go"}, body)
}

func TestCorrectGrammar_RejectsUnsupportedLanguage(t *testing.T) {
	completer := mocks.NewCompleter(t)

	w, body := do(t, newRoutes(completer), http.MethodPost, "/correct-grammar/", `{"text":"bonjour","lang":"fr"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body["error"], "Unsupported language")
}

func TestCorrectHindiGrammar_RejectsEnglish(t *testing.T) {
	completer := mocks.NewCompleter(t)

	w, body := do(t, newRoutes(completer), http.MethodPost, "/correct-hindi-grammar/", `{"text":"hello","lang":"en"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body["error"], "only for Hindi grammar correction")
	require.Empty(t, completer.Requests())
}

func TestTranslateRoundTrips(t *testing.T) {
	t.Run("hindi to english", func(t *testing.T) {
		completer := mocks.NewCompleter(t)
		completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply("text"), nil).Times(4)

		w, body := do(t, newRoutes(completer), http.MethodPost, "/translate-hi-to-en/", `{"text":"नमस्ते"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Header().Get(middleware.DegradedHeader))
		require.Equal(t, map[string]any{"translated_text": "text"}, body)
	})

	t.Run("english to hindi", func(t *testing.T) {
		completer := mocks.NewCompleter(t)
		completer.On("CompleteByModel", mock.Anything, mock.Anything).Return(mocks.Reply("पाठ"), nil).Twice()

		w, body := do(t, newRoutes(completer), http.MethodPost, "/translate-en-to-hi/", `{"text":"text"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"translated_text": "पाठ"}, body)
	})
}

func TestRootAndHealth(t *testing.T) {
	routes := newRoutes(mocks.NewCompleter(t))

	w, body := do(t, routes, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Welcome to the AI_Volution API!", body["message"])
	require.Contains(t, body["endpoints"], "/generate-speech/")

	w, body = do(t, routes, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"status": "healthy"}, body)
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/generate-speech/", nil)
	w := httptest.NewRecorder()

	newRoutes(mocks.NewCompleter(t)).ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
