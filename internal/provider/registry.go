package provider

import (
	"github.com/mandalnilabja/llmshim/internal/config"
	"github.com/mandalnilabja/llmshim/internal/provider/azurefoundry"
	"github.com/mandalnilabja/llmshim/internal/provider/huggingface"
	"github.com/mandalnilabja/llmshim/internal/provider/openrouter"
)

// NewProviders returns a map of all available LLM providers.
// The map key is the provider identifier used in config routing.
func NewProviders(cfg *config.Config) map[string]Provider {
	return map[string]Provider{
		"openrouter":   openrouter.New(cfg.Secrets.OpenRouterAPIKey),
		"azurefoundry": azurefoundry.New(cfg.Secrets.AzureFoundryAPIKey, cfg.AzureFoundry.Endpoint, cfg.AzureFoundry.APIVersion),
		"huggingface":  huggingface.New(cfg.Secrets.HuggingFaceAPIKey, cfg.HuggingFace.BaseURL),
	}
}
