package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	rediscache "github.com/davidbz/orator/internal/cache/redis"
	"github.com/davidbz/orator/internal/observability"
	"github.com/davidbz/orator/internal/provider/echo"
	"github.com/davidbz/orator/internal/provider/gemini"
	"github.com/davidbz/orator/internal/provider/groq"
)

const maxTemperature = 2.0

// ErrNoProvider is returned when no completion provider is configured.
var ErrNoProvider = errors.New("no completion provider configured: set GROQ_API_KEY, GEMINI_API_KEY or ECHO_PROVIDER_ENABLED")

// Config represents the service configuration.
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Log      observability.LogConfig
	Groq     groq.Config
	Gemini   gemini.Config
	Echo     echo.Config
	Pipeline PipelineConfig
	Cache    rediscache.Config
}

// ServerConfig contains HTTP server settings. WriteTimeout must exceed the
// longest pipeline (four sequential stages) times GROQ_TIMEOUT.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"300"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// PipelineConfig selects the models and sampling used by the pipelines.
// Empty TranslationModel and CorrectionModel fall back to Model.
type PipelineConfig struct {
	Model            string  `env:"PIPELINE_MODEL"             envDefault:"llama-3.3-70b-versatile"`
	TranslationModel string  `env:"PIPELINE_TRANSLATION_MODEL"`
	CorrectionModel  string  `env:"PIPELINE_CORRECTION_MODEL"`
	Temperature      float64 `env:"PIPELINE_TEMPERATURE"       envDefault:"0.7"`
}

// Models returns the distinct models the pipelines will call.
func (p PipelineConfig) Models() []string {
	models := []string{p.Model}
	for _, model := range []string{p.TranslationModel, p.CorrectionModel} {
		if model != "" && !slices.Contains(models, model) {
			models = append(models, model)
		}
	}
	return models
}

// DepConfig is used for dependency injection with dig.
// Fields are named because several sub-configs share the type name Config.
type DepConfig struct {
	dig.Out

	Server   *ServerConfig
	CORS     *CORSConfig
	Log      *observability.LogConfig
	Groq     *groq.Config
	Gemini   *gemini.Config
	Echo     *echo.Config
	Pipeline *PipelineConfig
	Cache    *rediscache.Config
}

// Load loads environment files and parses configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that cannot be expressed as env defaults.
func (c *Config) Validate() error {
	if c.Groq.APIKey == "" && c.Gemini.APIKey == "" && !c.Echo.Enabled {
		return ErrNoProvider
	}
	if c.Pipeline.Model == "" {
		return errors.New("PIPELINE_MODEL cannot be empty")
	}
	// Providers treat a zero temperature as unset, so it cannot be honoured.
	if c.Pipeline.Temperature <= 0 || c.Pipeline.Temperature > maxTemperature {
		return fmt.Errorf("PIPELINE_TEMPERATURE must be in (0, %g], got %g", maxTemperature, c.Pipeline.Temperature)
	}
	return nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:   &cfg.Server,
		CORS:     &cfg.CORS,
		Log:      &cfg.Log,
		Groq:     &cfg.Groq,
		Gemini:   &cfg.Gemini,
		Echo:     &cfg.Echo,
		Pipeline: &cfg.Pipeline,
		Cache:    &cfg.Cache,
	}
}
