package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort     string        `toml:"server_port"`
	LogLevel       string        `toml:"log_level"`
	RateLimitRPS   *float64      `toml:"rate_limit_rps"`
	RateLimitBurst *int          `toml:"rate_limit_burst"`
	UsageCacheTTL  string        `toml:"usage_cache_ttl"`
	Default        *DefaultRoute `toml:"default"`
	Models         []ModelAlias  `toml:"models"`

	HuggingFace  HuggingFaceConfig  `toml:"huggingface"`
	AzureFoundry AzureFoundryConfig `toml:"azurefoundry"`
}

// DefaultRoute defines the fallback provider for unknown slugs.
// An empty Model passes the requested slug through unchanged.
type DefaultRoute struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// ModelAlias maps a short slug to a provider and model combination.
type ModelAlias struct {
	Slug     string `toml:"slug"`
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// HuggingFaceConfig points at a text-generation-inference endpoint.
// A "{model}" placeholder in BaseURL is replaced with the upstream model;
// without one, "/generate" is appended.
type HuggingFaceConfig struct {
	BaseURL string `toml:"base_url"`
}

// AzureFoundryConfig holds the Azure AI Foundry endpoint.
type AzureFoundryConfig struct {
	Endpoint   string `toml:"endpoint"`
	APIVersion string `toml:"api_version"`
}

// ConfigPath returns the path to the config file (~/.llmshim/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file at path. An empty path
// means ConfigPath(). A missing file yields an empty FileConfig.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path == "" {
		path = ConfigPath()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# llmshim configuration
# server_port = ":8080"
# log_level = "info"          # debug | info | warn | error
# rate_limit_rps = 10          # 0 disables rate limiting
# rate_limit_burst = 20
# usage_cache_ttl = "30s"

# Provider secrets are read from the environment (or a .env file):
#   OPENROUTER_API_KEY, AZURE_FOUNDRY_API_KEY, HUGGINGFACE_API_KEY

# Optional default routing for unaliased models
# [default]
# provider = "openrouter"

# Model aliases - map short names to provider/model combinations
# [[models]]
# slug = "gpt4"
# provider = "openrouter"
# model = "openai/gpt-4o"

# [[models]]
# slug = "zephyr"
# provider = "huggingface"
# model = "HuggingFaceH4/zephyr-7b-beta"

# [huggingface]
# base_url = "https://api-inference.huggingface.co/models/{model}"

# Azure AI Foundry example
# [azurefoundry]
# endpoint = "my-resource.services.ai.azure.com"
# api_version = "2024-05-01-preview"
#
# [[models]]
# slug = "deepseek-r1"
# provider = "azurefoundry"
# model = "DeepSeek-R1"
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
