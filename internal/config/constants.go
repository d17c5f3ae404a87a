package config

import "time"

const (
	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Token cap for assistant replies
	MaxTokens = 2048

	// Anthropic messages API version header
	AnthropicVersion = "2023-06-01"

	// HTTP server timeouts
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 15 * time.Second
)
