package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Server
	Port int `env:"PORT" envDefault:"8080"`

	// Storage. Backend is one of: postgres, redis, memory.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisURL     string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Provider API keys. Only the providers used by stage configs need keys.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	ClaudeAPIKey string `env:"CLAUDE_API_KEY"`

	// Provider endpoints, overridable for proxies and tests.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ClaudeBaseURL string `env:"CLAUDE_BASE_URL" envDefault:"https://api.anthropic.com/v1"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	OllamaURL     string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
	}
	return cfg, nil
}
