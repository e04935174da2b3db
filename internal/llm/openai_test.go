package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultOpenAIConfig()
	cfg.BaseURL = srv.URL + "/"
	cfg.SystemInstruction = "You are a precise assistant."
	client, err := NewOpenAIClient(cfg, "test-key", srv.Client())
	require.NoError(t, err)
	return client
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(nil, "  ", nil)
	require.Error(t, err)
}

func TestNewClient_SelectsProvider(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultOpenAIConfig(), "k")
	require.NoError(t, err)
	_, ok := client.(*OpenAIClient)
	assert.True(t, ok)
	assert.Equal(t, "llama-3.3-70b-versatile", client.GetModel(TierStandard))
	assert.NoError(t, client.Close())
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "")
	require.Error(t, err)
}

func TestOpenAIClient_GenerateJSON(t *testing.T) {
	var got chatRequest
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` +
			"```json\\n[{\\\"question\\\": \\\"Q1\\\"}]\\n```" + `"}}]}`))
	})

	out, err := client.GenerateJSON(context.Background(), "Return JSON", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "```json\n[{\"question\": \"Q1\"}]\n```", out)
	var decoded []map[string]string
	require.NoError(t, DecodeJSON(out, &decoded))
	assert.Equal(t, "Q1", decoded[0]["question"])

	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.InDelta(t, 0.1, got.Temperature, 0.0001)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "Return JSON", got.Messages[1].Content)
}

func TestOpenAIClient_GenerateContent_NoResponseFormat(t *testing.T) {
	var raw map[string]any
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	})

	out, err := client.GenerateContent(context.Background(), "hi", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	_, present := raw["response_format"]
	assert.False(t, present)
	assert.Equal(t, "llama-3.1-8b-instant", raw["model"])
}

func TestOpenAIClient_HTTPError(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := client.GenerateJSON(context.Background(), "x", TierStandard)
	require.Error(t, err)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.GenerateJSON(context.Background(), "x", TierStandard)
	require.Error(t, err)
}

func TestOpenAIClient_MissingTierModel(t *testing.T) {
	client, err := NewOpenAIClient(&Config{Provider: ProviderOpenAI, Models: map[ModelTier]string{}}, "k", nil)
	require.NoError(t, err)
	_, err = client.GenerateContent(context.Background(), "x", TierAdvanced)
	require.Error(t, err)
}
