package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact request path
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; zero or less means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_GENERATE_LIMIT", 30)),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. generateLimit is
// the hourly allowance for question generation, which fans out to every
// source page and the LLM.
func DefaultEndpointConfigs(generateLimit int) []EndpointConfig {
	burst := max(generateLimit/10, 1)
	return []EndpointConfig{
		{Path: "/generate_interview_questions", Method: "POST", Limit: generateLimit, Window: time.Hour, Burst: burst},
		{Path: "/generate_interview_questions/stream", Method: "POST", Limit: generateLimit, Window: time.Hour, Burst: burst},
		{Path: "/generate_dsa_questions", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
