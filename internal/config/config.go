// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yaswanth-142004/EZ-Search/internal/llm"
)

// Defaults applied by Default and MergeWithDefaults.
const (
	DefaultProvider            = "gemini"
	DefaultTemperature         = 0.2
	DefaultDSAPath             = "dsa.json"
	DefaultPort                = 7070
	DefaultFetchTimeoutSeconds = 10
	DefaultLogMode             = "dev"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, CLI
// flags or defaults.
type Config struct {
	// LLM
	Provider    string  `json:"provider,omitempty"`    // gemini, openai or groq
	Model       string  `json:"model,omitempty"`       // Overrides the standard tier model
	BaseURL     string  `json:"base_url,omitempty"`    // OpenAI-compatible endpoint
	APIKey      string  `json:"api_key,omitempty"`     // Provider API key
	Temperature float64 `json:"temperature,omitempty"` // Curation sampling temperature

	// Harvest
	Sources             []string `json:"sources,omitempty"`               // Overrides the built-in source list
	FetchTimeoutSeconds int      `json:"fetch_timeout_seconds,omitempty"` // Per-request timeout
	FetchInterval       string   `json:"fetch_interval,omitempty"`        // Minimum gap between requests, e.g. "500ms"
	UseBrowser          bool     `json:"use_browser,omitempty"`           // Render script-heavy pages headlessly

	// Service
	DSAPath string `json:"dsa_path,omitempty"` // Static DSA table
	Port    int    `json:"port,omitempty"`     // HTTP listen port
	LogMode string `json:"log_mode,omitempty"` // dev or prod
	Verbose bool   `json:"verbose,omitempty"`  // Print detailed debug information
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider:            DefaultProvider,
		Temperature:         DefaultTemperature,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
		DSAPath:             DefaultDSAPath,
		Port:                DefaultPort,
		LogMode:             DefaultLogMode,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads LLM_PROVIDER, LLM_MODEL, LLM_BASE_URL, DSA_PATH, PORT and
// LOG_MODE. Unset or unparsable variables leave fields empty. The API key is
// not read here: it depends on the final provider, see ResolveAPIKey.
func FromEnv() Config {
	cfg := Config{
		Provider: strings.TrimSpace(os.Getenv("LLM_PROVIDER")),
		Model:    strings.TrimSpace(os.Getenv("LLM_MODEL")),
		BaseURL:  strings.TrimSpace(os.Getenv("LLM_BASE_URL")),
		DSAPath:  strings.TrimSpace(os.Getenv("DSA_PATH")),
		LogMode:  strings.TrimSpace(os.Getenv("LOG_MODE")),
	}
	if port, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PORT"))); err == nil {
		cfg.Port = port
	}
	return cfg
}

// APIKeyFromEnv returns the API key for provider: GEMINI_API_KEY, or
// GROQ_API_KEY then OPENAI_API_KEY for the OpenAI-compatible provider.
func APIKeyFromEnv(provider llm.Provider) string {
	if provider == llm.ProviderOpenAI {
		if key := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); key != "" {
			return key
		}
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

// Validate checks that the configuration has valid values.
// Required values such as the API key are checked by the caller that needs them.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if _, err := c.FetchIntervalDuration(); err != nil {
		return err
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	for _, src := range c.Sources {
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			return fmt.Errorf("config error: source %q is not an http(s) URL", src)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer a config file over the environment and the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.FetchInterval == "" {
		result.FetchInterval = defaults.FetchInterval
	}
	if result.DSAPath == "" {
		result.DSAPath = defaults.DSAPath
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}
	if len(result.Sources) == 0 {
		result.Sources = defaults.Sources
	}

	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FetchTimeout returns the per-request timeout, or zero for the fetcher default.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// FetchIntervalDuration parses FetchInterval. Empty means no pacing.
func (c *Config) FetchIntervalDuration() (time.Duration, error) {
	if c.FetchInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.FetchInterval)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config error: invalid 'fetch_interval' %q", c.FetchInterval)
	}
	return d, nil
}

// LLMConfig builds the LLM client configuration for the selected provider.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.ConfigForProvider(provider)
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.Temperature > 0 {
		cfg.Temperature = float32(c.Temperature)
	}
	return cfg, nil
}

// ResolveAPIKey returns APIKey, falling back to the provider's environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return ""
	}
	return APIKeyFromEnv(provider)
}
