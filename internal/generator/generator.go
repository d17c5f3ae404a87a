// Package generator calls the configured LLM provider and returns raw reply
// text. Each provider speaks its own HTTP API; the caller picks one via the
// stage's assistant config.
package generator

import (
	"context"
	"fmt"
	"net/http"

	"github.com/set-night/shoplab/internal/config"
	"github.com/set-night/shoplab/internal/domain"
)

// Message is one prompt message in provider-neutral form.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelSettings selects the provider and model for a generation call.
type ModelSettings struct {
	APIType   domain.APIType
	ModelName string
}

// GenerationConfig carries the sampling parameters for a call.
type GenerationConfig struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces a text completion for a conversation. Implementations
// return an error for transport or API failures; an empty reply with a nil
// error is possible and is the caller's problem to reject.
type Generator interface {
	Generate(ctx context.Context, messages []Message, settings ModelSettings, genCfg GenerationConfig) (string, error)
}

// Client dispatches generation calls to provider backends.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

// New creates a generator client using the provider keys and endpoints from
// the application config.
func New(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// Generate routes the call to the provider named by the model settings.
func (c *Client) Generate(ctx context.Context, messages []Message, settings ModelSettings, genCfg GenerationConfig) (string, error) {
	switch settings.APIType {
	case domain.APITypeOpenAI:
		return c.generateOpenAI(ctx, messages, settings.ModelName, genCfg)
	case domain.APITypeClaude:
		return c.generateClaude(ctx, messages, settings.ModelName, genCfg)
	case domain.APITypeGemini:
		return c.generateGemini(ctx, messages, settings.ModelName, genCfg)
	case domain.APITypeOllama:
		return c.generateOllama(ctx, messages, settings.ModelName, genCfg)
	default:
		return "", fmt.Errorf("unsupported api type %q", settings.APIType)
	}
}

// splitSystem separates the leading system message from the conversation for
// providers that take the system prompt out of band.
func splitSystem(messages []Message) (system string, rest []Message) {
	if len(messages) > 0 && messages[0].Role == "system" {
		return messages[0].Content, messages[1:]
	}
	return "", messages
}
