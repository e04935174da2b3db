package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaswanth-142004/EZ-Search/internal/llm"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"provider": "groq",
		"model": "llama-3.1-70b",
		"temperature": 0.15,
		"sources": ["https://example.com/dsa-questions"],
		"fetch_interval": "250ms",
		"dsa_path": "data/dsa.json",
		"port": 8080,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "llama-3.1-70b", cfg.Model)
	assert.InDelta(t, 0.15, cfg.Temperature, 1e-9)
	assert.Equal(t, []string{"https://example.com/dsa-questions"}, cfg.Sources)
	assert.Equal(t, "data/dsa.json", cfg.DSAPath)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Verbose)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Default(), ""},
		{"unknown provider", Config{Provider: "anthropic"}, "unknown LLM provider"},
		{"temperature", Config{Temperature: 3}, "temperature"},
		{"timeout", Config{FetchTimeoutSeconds: -1}, "fetch_timeout_seconds"},
		{"interval", Config{FetchInterval: "soon"}, "fetch_interval"},
		{"negative interval", Config{FetchInterval: "-1s"}, "fetch_interval"},
		{"port", Config{Port: 70000}, "port"},
		{"source scheme", Config{Sources: []string{"ftp://example.com"}}, "not an http(s) URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Provider: "groq",
		Port:     9000,
	}

	merged := partial.MergeWithDefaults(Default())

	assert.Equal(t, "groq", merged.Provider)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultDSAPath, merged.DSAPath)
	assert.Equal(t, DefaultLogMode, merged.LogMode)
	assert.Equal(t, DefaultFetchTimeoutSeconds, merged.FetchTimeoutSeconds)
	assert.InDelta(t, DefaultTemperature, merged.Temperature, 1e-9)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Model: "m", DSAPath: "x.json"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "m", merged.Model)
	assert.Equal(t, "x.json", merged.DSAPath)
	assert.Empty(t, merged.Provider)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("GEMINI_API_KEY", "gemini-test")
	t.Setenv("DSA_PATH", "/data/dsa.json")
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_MODE", "prod")

	cfg := FromEnv()

	assert.Equal(t, "groq", cfg.Provider)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "gsk-test", cfg.ResolveAPIKey())
	assert.Equal(t, "/data/dsa.json", cfg.DSAPath)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestFromEnv_GeminiDefault(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "gemini-test")
	t.Setenv("PORT", "not-a-port")

	cfg := FromEnv()

	assert.Equal(t, "gemini-test", cfg.ResolveAPIKey())
	assert.Equal(t, 0, cfg.Port)
}

func TestAPIKeyFromEnv_OpenAIFallback(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	assert.Equal(t, "sk-test", APIKeyFromEnv(llm.ProviderOpenAI))
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	assert.Equal(t, "explicit", (&Config{APIKey: "explicit"}).ResolveAPIKey())
	assert.Equal(t, "from-env", (&Config{Provider: "gemini"}).ResolveAPIKey())
	assert.Equal(t, "", (&Config{Provider: "bogus"}).ResolveAPIKey())
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{Provider: "groq", Model: "custom", BaseURL: "http://localhost:1234/v1", Temperature: 0.15}

	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, llmCfg.Provider)
	assert.Equal(t, "custom", llmCfg.GetModel(llm.TierStandard))
	assert.Equal(t, "http://localhost:1234/v1", llmCfg.BaseURL)
	assert.InDelta(t, 0.15, llmCfg.Temperature, 1e-6)

	_, err = (&Config{Provider: "bogus"}).LLMConfig()
	require.Error(t, err)
}

func TestFetchDurations(t *testing.T) {
	cfg := Config{FetchTimeoutSeconds: 3, FetchInterval: "1500ms"}

	assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
	d, err := cfg.FetchIntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, err = (&Config{}).FetchIntervalDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
