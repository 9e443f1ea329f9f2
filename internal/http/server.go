package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/orator/internal/config"
	"github.com/davidbz/orator/internal/http/middleware"
	"github.com/davidbz/orator/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      *cfg,
		handler:     handler,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Routes returns the route table wrapped in the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handler.HandleRoot)
	mux.HandleFunc("GET /health", s.handler.HandleHealth)

	mux.HandleFunc("POST /detect-language/", s.handler.HandleDetectLanguage)
	mux.HandleFunc("POST /translate/", s.handler.HandleTranslate)
	mux.HandleFunc("POST /enhance-text/", s.handler.HandleEnhanceText)

	mux.HandleFunc("POST /generate-speech/", s.handler.HandleGenerateSpeech)
	mux.HandleFunc("POST /generate-educational-speech/", s.handler.HandleEducationalSpeech)
	mux.HandleFunc("POST /generate-product-launch-speech/", s.handler.HandleProductLaunchSpeech)
	mux.HandleFunc("POST /generate-inspirational-storytelling-speech/", s.handler.HandleStorytellingSpeech)
	mux.HandleFunc("POST /generate-award-acceptance-speech/", s.handler.HandleAwardAcceptanceSpeech)
	mux.HandleFunc("POST /generate-farewell-speech/", s.handler.HandleFarewellSpeech)

	mux.HandleFunc("POST /translate-hi-to-en/", s.handler.HandleTranslateHindiToEnglish)
	mux.HandleFunc("POST /translate-en-to-hi/", s.handler.HandleTranslateEnglishToHindi)
	mux.HandleFunc("POST /correct-grammar/", s.handler.HandleCorrectGrammar)
	mux.HandleFunc("POST /correct-hindi-grammar/", s.handler.HandleCorrectHindiGrammar)

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Routes(),
		ReadTimeout:       time.Duration(s.config.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.config.WriteTimeout) * time.Second,
	}

	observability.FromContext(context.Background()).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
