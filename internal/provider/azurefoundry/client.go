// Package azurefoundry implements the Azure AI Foundry LLM provider.
package azurefoundry

import (
	"context"
	"errors"
	"iter"
	"net/http"

	"github.com/mandalnilabja/llmshim/internal/provider/upstream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

const defaultAPIVersion = "2024-05-01-preview"

// ErrNoEndpoint is returned when no Foundry endpoint is configured.
var ErrNoEndpoint = errors.New("azurefoundry: no endpoint configured")

// Provider implements the provider.Provider interface for Azure AI Foundry.
type Provider struct {
	apiKey     string
	endpoint   string
	apiVersion string
	client     *http.Client
}

// New creates a new Azure AI Foundry provider instance.
func New(apiKey, endpoint, apiVersion string) *Provider {
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	return &Provider{
		apiKey:     apiKey,
		endpoint:   endpoint,
		apiVersion: apiVersion,
		client:     upstream.NewHTTPClient(),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "azurefoundry"
}

// target resolves the request URL and Azure-style auth header.
func (p *Provider) target() (string, http.Header, error) {
	if p.apiKey == "" {
		return "", nil, upstream.ErrNoAPIKey
	}
	if p.endpoint == "" {
		return "", nil, ErrNoEndpoint
	}
	targetURL, err := buildTargetURL(p.endpoint, p.apiVersion)
	if err != nil {
		return "", nil, err
	}

	h := http.Header{}
	h.Set("api-key", p.apiKey)
	return targetURL, h, nil
}

// ChatCompletion sends a non-streaming request.
func (p *Provider) ChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	targetURL, h, err := p.target()
	if err != nil {
		return nil, err
	}

	resp, err := upstream.PostJSON(ctx, p.client, targetURL, h, upstream.WithModel(req, req.Model, false))
	if err != nil {
		return nil, err
	}
	return upstream.DecodeChat(resp, p.Name(), targetURL)
}

// StreamChatCompletion sends a streaming request and yields decoded chunks.
func (p *Provider) StreamChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (iter.Seq2[*types.ChatCompletionChunk, error], error) {
	targetURL, h, err := p.target()
	if err != nil {
		return nil, err
	}
	h.Set("Accept", "text/event-stream")

	resp, err := upstream.PostJSON(ctx, p.client, targetURL, h, upstream.WithModel(req, req.Model, true))
	if err != nil {
		return nil, err
	}
	return upstream.ChunkStream(resp), nil
}
