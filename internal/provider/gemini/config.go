package gemini

// Config contains Gemini upstream configuration.
// The server credential is read from GEMINI_API_KEY, falling back to
// VITE_GEMINI_API_KEY; the first one present wins.
type Config struct {
	APIKey       string `env:"GEMINI_API_KEY"`
	ClientAPIKey string `env:"VITE_GEMINI_API_KEY"`
	BaseURL      string `env:"GEMINI_BASE_URL"          envDefault:"https://generativelanguage.googleapis.com"`
	APIVersion   string `env:"GEMINI_API_VERSION"       envDefault:"v1"`
	DefaultModel string `env:"GEMINI_MODEL"             envDefault:"gemini-pro"`
	MaxTokens    int    `env:"GEMINI_MAX_OUTPUT_TOKENS" envDefault:"1000"`
	Timeout      int    `env:"GEMINI_TIMEOUT"           envDefault:"60"`
}

// Credential returns the API key the relay should use, or "" when none is set.
func (c Config) Credential() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.ClientAPIKey
}
