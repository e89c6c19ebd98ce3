// Package openrouter implements the OpenRouter LLM provider.
package openrouter

import (
	"context"
	"iter"
	"net/http"

	"github.com/mandalnilabja/llmshim/internal/provider/upstream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// DefaultBaseURL is the OpenRouter chat completions endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

// Provider implements the provider.Provider interface for OpenRouter.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the upstream endpoint.
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// New creates a new OpenRouter provider instance.
func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  upstream.NewHTTPClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openrouter"
}

// BaseURL returns the OpenRouter API endpoint
func (p *Provider) BaseURL() string {
	return p.baseURL
}

// headers returns authorization plus OpenRouter-specific attribution headers.
func (p *Provider) headers() (http.Header, error) {
	if p.apiKey == "" {
		return nil, upstream.ErrNoAPIKey
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+p.apiKey)
	h.Set("HTTP-Referer", "https://github.com/mandalnilabja/llmshim")
	h.Set("X-Title", "llmshim")
	return h, nil
}

// ChatCompletion sends a non-streaming request.
func (p *Provider) ChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	h, err := p.headers()
	if err != nil {
		return nil, err
	}

	resp, err := upstream.PostJSON(ctx, p.client, p.baseURL, h, upstream.WithModel(req, req.Model, false))
	if err != nil {
		return nil, err
	}
	return upstream.DecodeChat(resp, p.Name(), p.baseURL)
}

// StreamChatCompletion sends a streaming request and yields decoded chunks.
func (p *Provider) StreamChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (iter.Seq2[*types.ChatCompletionChunk, error], error) {
	h, err := p.headers()
	if err != nil {
		return nil, err
	}
	h.Set("Accept", "text/event-stream")

	resp, err := upstream.PostJSON(ctx, p.client, p.baseURL, h, upstream.WithModel(req, req.Model, true))
	if err != nil {
		return nil, err
	}
	return upstream.ChunkStream(resp), nil
}
