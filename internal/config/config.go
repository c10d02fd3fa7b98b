package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/launchpad/internal/chat"
	"github.com/davidbz/launchpad/internal/observability"
	"github.com/davidbz/launchpad/internal/provider/gemini"
	"github.com/davidbz/launchpad/internal/ratelimit"
)

// Upstream modes.
const (
	UpstreamGemini = "gemini"
	UpstreamEcho   = "echo"
)

// Config represents the relay configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       observability.Config
	Gemini    gemini.Config
	RateLimit ratelimit.Config
	Redis     ratelimit.RedisConfig
	Upstream  UpstreamConfig
}

// ServerConfig contains HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port            int `env:"PORT"                    envDefault:"3002"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"90"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// UpstreamConfig selects what the relay forwards to.
type UpstreamConfig struct {
	Mode string `env:"UPSTREAM_MODE" envDefault:"gemini"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server    *ServerConfig
	CORS      *CORSConfig
	Log       *observability.Config
	Gemini    *gemini.Config
	RateLimit *ratelimit.Config
	Redis     *ratelimit.RedisConfig
	Upstream  *UpstreamConfig
}

// ChatConfig represents the chat client configuration.
type ChatConfig struct {
	Transport string `env:"CHAT_TRANSPORT" envDefault:"relay"`
	Log       observability.Config
	Relay     chat.RelayConfig
	Direct    chat.DirectConfig
}

// Load loads environment files and parses the relay configuration.
func Load() *Config {
	loadEnvFiles()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// LoadChat loads environment files and parses the chat client configuration.
func LoadChat() *ChatConfig {
	loadEnvFiles()

	var cfg ChatConfig
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:       dig.Out{},
		Server:    &cfg.Server,
		CORS:      &cfg.CORS,
		Log:       &cfg.Log,
		Gemini:    &cfg.Gemini,
		RateLimit: &cfg.RateLimit,
		Redis:     &cfg.Redis,
		Upstream:  &cfg.Upstream,
	}
}

func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		_ = godotenv.Load(file)
	}
}
