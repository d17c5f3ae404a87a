package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/set-night/shoplab/internal/config"
)

type claudeRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) generateClaude(ctx context.Context, messages []Message, model string, genCfg GenerationConfig) (string, error) {
	if c.cfg.ClaudeAPIKey == "" {
		return "", fmt.Errorf("claude api key not configured")
	}

	// The messages API takes the system prompt as a top-level field.
	system, conversation := splitSystem(messages)

	payload, err := json.Marshal(claudeRequest{
		Model:       model,
		System:      system,
		Messages:    conversation,
		Temperature: genCfg.Temperature,
		MaxTokens:   genCfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.ClaudeBaseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.ClaudeAPIKey)
	req.Header.Set("anthropic-version", config.AnthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("claude returned status %d: %s", resp.StatusCode, truncate(body))
	}

	var msgResp claudeResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
