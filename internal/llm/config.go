// Package llm provides centralized LLM configuration and client abstractions.
// This package enables switching between model tiers and providers.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: validation, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: rewriting, planning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint (Groq by default)
	ProviderOpenAI Provider = "openai"
)

// DefaultTemperature keeps output close to deterministic.
const DefaultTemperature float32 = 0.1

// DefaultOpenAIBaseURL points the OpenAI-compatible provider at Groq.
const DefaultOpenAIBaseURL = "https://api.groq.com/openai/v1"

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// BaseURL is only used by the OpenAI-compatible provider.
	BaseURL string
	// SystemInstruction is sent ahead of every prompt when set.
	SystemInstruction string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// DefaultOpenAIConfig returns the default OpenAI-compatible configuration,
// targeting Groq-hosted Llama models.
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "llama-3.1-8b-instant",
			TierStandard: "llama-3.3-70b-versatile",
			TierAdvanced: "llama-3.3-70b-versatile",
		},
		Temperature: DefaultTemperature,
		BaseURL:     DefaultOpenAIBaseURL,
	}
}

// ConfigForProvider returns the default configuration of a provider.
func ConfigForProvider(p Provider) *Config {
	if p == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// ParseProvider maps a configuration string to a Provider. Empty selects Gemini;
// "groq" is accepted as an alias of the OpenAI-compatible provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ProviderGemini):
		return ProviderGemini, nil
	case string(ProviderOpenAI), "groq":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", s)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithTemperature returns a new Config with the given sampling temperature
func (c *Config) WithTemperature(t float32) *Config {
	newConfig := c.clone()
	newConfig.Temperature = t
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models))
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	return &newConfig
}
