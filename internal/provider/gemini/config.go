package gemini

// Config contains Gemini provider configuration. The provider is optional and
// registered only when an API key is present.
type Config struct {
	APIKey  string   `env:"GEMINI_API_KEY"`
	BaseURL string   `env:"GEMINI_BASE_URL"`
	Models  []string `env:"GEMINI_MODELS" envDefault:"gemini-2.0-flash-001" envSeparator:","`
}
