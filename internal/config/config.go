package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultServerPort      = ":8080"
	defaultLogLevel        = "info"
	defaultRateLimitRPS    = 10
	defaultRateLimitBurst  = 20
	defaultUsageCacheTTL   = 30 * time.Second
	defaultHuggingFaceURL  = "https://api-inference.huggingface.co/models/{model}"
	defaultAzureAPIVersion = "2024-05-01-preview"
)

// Config holds application configuration loaded from environment and file.
// Priority: CLI flags → Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// LogLevel is one of debug, info, warn, error
	LogLevel string

	// RateLimitRPS is the per-client request rate; 0 disables limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// UsageCacheTTL bounds how stale /api/usage statistics may be
	UsageCacheTTL time.Duration

	// Default routing for unaliased models
	Default *DefaultRoute

	// Models contains model alias mappings
	Models []ModelAlias

	HuggingFace  HuggingFaceConfig
	AzureFoundry AzureFoundryConfig

	Secrets Secrets
}

// Load reads configuration from the file at path (or the default location)
// and environment variables. Environment variables override file values.
func Load(path string) (*Config, error) {
	fileConfig, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	ttl := defaultUsageCacheTTL
	if raw := getEnvOrFile("USAGE_CACHE_TTL", fileConfig.UsageCacheTTL, ""); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid usage_cache_ttl %q: %w", raw, err)
		}
	}

	rps, err := getEnvFloatOrFile("RATE_LIMIT_RPS", fileConfig.RateLimitRPS, defaultRateLimitRPS)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvIntOrFile("RATE_LIMIT_BURST", fileConfig.RateLimitBurst, defaultRateLimitBurst)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, defaultServerPort),
		LogLevel:       getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, defaultLogLevel),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		UsageCacheTTL:  ttl,
		Default:        fileConfig.Default,
		Models:         fileConfig.Models,
		HuggingFace: HuggingFaceConfig{
			BaseURL: getEnvOrFile("HUGGINGFACE_BASE_URL", fileConfig.HuggingFace.BaseURL, defaultHuggingFaceURL),
		},
		AzureFoundry: AzureFoundryConfig{
			Endpoint:   getEnvOrFile("AZURE_FOUNDRY_ENDPOINT", fileConfig.AzureFoundry.Endpoint, ""),
			APIVersion: getEnvOrFile("AZURE_FOUNDRY_API_VERSION", fileConfig.AzureFoundry.APIVersion, defaultAzureAPIVersion),
		},
		Secrets: LoadSecrets(),
	}, nil
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvFloatOrFile returns env float, file float, or default (in priority order)
func getEnvFloatOrFile(key string, fileValue *float64, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return f, nil
	}
	if fileValue != nil {
		return *fileValue, nil
	}
	return defaultValue, nil
}

// getEnvIntOrFile returns env int, file int, or default (in priority order)
func getEnvIntOrFile(key string, fileValue *int, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return n, nil
	}
	if fileValue != nil {
		return *fileValue, nil
	}
	return defaultValue, nil
}
