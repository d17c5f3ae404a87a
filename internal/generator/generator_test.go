package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/shoplab/internal/config"
	"github.com/set-night/shoplab/internal/domain"
)

func testMessages() []Message {
	return []Message{
		{Role: "system", Content: "You are a helpful shopping assistant."},
		{Role: "user", Content: "I need batteries."},
	}
}

func testGenConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.7, MaxTokens: 2048}
}

func TestGenerate_OpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		assert.Equal(t, 2048, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Try these. [RECOMMEND:bat-001:Long-lasting]"}},
			},
		})
	}))
	defer srv.Close()

	c := New(&config.Config{OpenAIAPIKey: "test-key", OpenAIBaseURL: srv.URL})
	text, err := c.Generate(context.Background(), testMessages(),
		ModelSettings{APIType: domain.APITypeOpenAI, ModelName: "gpt-4o-mini"}, testGenConfig())

	require.NoError(t, err)
	assert.Equal(t, "Try these. [RECOMMEND:bat-001:Long-lasting]", text)
}

func TestGenerate_OpenAI_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	c := New(&config.Config{OpenAIAPIKey: "test-key", OpenAIBaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testMessages(),
		ModelSettings{APIType: domain.APITypeOpenAI, ModelName: "gpt-4o-mini"}, testGenConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_OpenAI_MissingKey(t *testing.T) {
	c := New(&config.Config{OpenAIBaseURL: "http://localhost:0"})
	_, err := c.Generate(context.Background(), testMessages(),
		ModelSettings{APIType: domain.APITypeOpenAI, ModelName: "gpt-4o-mini"}, testGenConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}

func TestGenerate_Claude_SystemPromptSplit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, config.AnthropicVersion, r.Header.Get("anthropic-version"))

		var req claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "You are a helpful shopping assistant.", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, 2048, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "Here you go."}},
		})
	}))
	defer srv.Close()

	c := New(&config.Config{ClaudeAPIKey: "test-key", ClaudeBaseURL: srv.URL})
	text, err := c.Generate(context.Background(), testMessages(),
		ModelSettings{APIType: domain.APITypeClaude, ModelName: "claude-sonnet-4-5"}, testGenConfig())

	require.NoError(t, err)
	assert.Equal(t, "Here you go.", text)
}

func TestGenerate_Gemini_RoleMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		require.Len(t, req.Contents, 2)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "model", req.Contents[1].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Sure thing."}}}},
			},
		})
	}))
	defer srv.Close()

	messages := append(testMessages(), Message{Role: "assistant", Content: "What kind?"})
	c := New(&config.Config{GeminiAPIKey: "test-key", GeminiBaseURL: srv.URL})
	text, err := c.Generate(context.Background(), messages,
		ModelSettings{APIType: domain.APITypeGemini, ModelName: "gemini-2.0-flash"}, testGenConfig())

	require.NoError(t, err)
	assert.Equal(t, "Sure thing.", text)
}

func TestGenerate_Ollama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "llama3.2", req.Model)
		assert.Equal(t, 2048, req.Options.NumPredict)

		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "Local reply."},
		})
	}))
	defer srv.Close()

	c := New(&config.Config{OllamaURL: srv.URL})
	text, err := c.Generate(context.Background(), testMessages(),
		ModelSettings{APIType: domain.APITypeOllama, ModelName: "llama3.2"}, testGenConfig())

	require.NoError(t, err)
	assert.Equal(t, "Local reply.", text)
}

func TestGenerate_UnsupportedProvider(t *testing.T) {
	c := New(&config.Config{})
	_, err := c.Generate(context.Background(), testMessages(),
		ModelSettings{APIType: "bard", ModelName: "x"}, testGenConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported api type")
}
