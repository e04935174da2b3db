package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultOpenAITimeout bounds a single chat completion request.
const DefaultOpenAITimeout = 60 * time.Second

// OpenAIClient implements Client against an OpenAI-compatible
// /chat/completions endpoint (Groq, OpenAI, local gateways).
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	config     *Config
	httpClient *http.Client
}

// HTTPError is returned for non-2xx responses from the completions endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("chat completions http %d: %s", e.StatusCode, e.Body)
}

// NewOpenAIClient creates a client for an OpenAI-compatible provider.
// A nil httpClient gets DefaultOpenAITimeout.
func NewOpenAIClient(config *Config, apiKey string, httpClient *http.Client) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultOpenAITimeout}
	}
	return &OpenAIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		config:     config,
		httpClient: httpClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.complete(ctx, prompt, tier, nil)
}

// GenerateJSON requests JSON mode and returns the response text as is
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.complete(ctx, prompt, tier, &responseFormat{Type: "json_object"})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, tier ModelTier, format *responseFormat) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	messages := make([]chatMessage, 0, 2)
	if c.config.SystemInstruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.config.SystemInstruction})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:          modelName,
		Messages:       messages,
		Temperature:    c.config.Temperature,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no content in response")
	}
	return content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no per-client resources.
func (c *OpenAIClient) Close() error {
	return nil
}
