package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Secret environment variables.
const (
	EnvOpenRouterAPIKey   = "OPENROUTER_API_KEY"
	EnvAzureFoundryAPIKey = "AZURE_FOUNDRY_API_KEY"
	EnvHuggingFaceAPIKey  = "HUGGINGFACE_API_KEY"
)

// Secrets holds provider API keys. They are never read from config.toml.
type Secrets struct {
	OpenRouterAPIKey   string
	AzureFoundryAPIKey string
	HuggingFaceAPIKey  string
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. An empty
// path tries ".env" in the working directory; a missing file is not an error.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadSecrets reads provider keys from the environment.
func LoadSecrets() Secrets {
	return Secrets{
		OpenRouterAPIKey:   os.Getenv(EnvOpenRouterAPIKey),
		AzureFoundryAPIKey: os.Getenv(EnvAzureFoundryAPIKey),
		HuggingFaceAPIKey:  os.Getenv(EnvHuggingFaceAPIKey),
	}
}
