// Package provider defines the upstream LLM provider contract and routes
// model slugs to concrete providers.
package provider

import (
	"context"
	"iter"

	"github.com/mandalnilabja/llmshim/internal/provider/upstream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// ErrNoAPIKey is returned when no API key is configured for a request
var ErrNoAPIKey = upstream.ErrNoAPIKey

// UpstreamError is a non-2xx reply from a provider.
type UpstreamError = upstream.Error

// Provider defines the interface all LLM providers must implement
type Provider interface {
	// Name returns the provider identifier, also used as the logprobs key
	Name() string

	// ChatCompletion performs a non-streaming chat completion
	ChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (*types.ChatCompletionResponse, error)

	// StreamChatCompletion starts a streaming chat completion. The returned
	// sequence must be fully ranged over or stopped to release the connection.
	StreamChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (iter.Seq2[*types.ChatCompletionChunk, error], error)
}
