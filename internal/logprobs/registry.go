// Package logprobs maps provider-specific log-probability payloads onto the
// legacy text-completion logprobs shape.
//
// Lookup is keyed by provider identifier. Providers without a registered
// extractor yield nil; no data is ever synthesized.
package logprobs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// ProviderHuggingFace identifies the text-generation-inference payload rule.
const ProviderHuggingFace = "huggingface"

var (
	// ErrDuplicateProvider is returned when a provider already has an extractor.
	ErrDuplicateProvider = errors.New("logprobs: provider already registered")
	// ErrInvalidExtractor is returned for an empty provider id or nil extractor.
	ErrInvalidExtractor = errors.New("logprobs: invalid extractor")
)

// Extractor reshapes a response's provider-specific fields into canonical
// logprobs. It returns nil when the expected fields are missing.
type Extractor func(resp *types.ChatCompletionResponse) *types.CompletionLogprobs

// Registry holds the provider allow-list.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
	}
}

// Register adds an extractor for provider.
func (r *Registry) Register(provider string, fn Extractor) error {
	if provider == "" || fn == nil {
		return ErrInvalidExtractor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[provider]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, provider)
	}
	r.extractors[provider] = fn
	return nil
}

// Extract runs the extractor registered for provider.
func (r *Registry) Extract(resp *types.ChatCompletionResponse, provider string) *types.CompletionLogprobs {
	if resp == nil || provider == "" {
		return nil
	}

	r.mu.RLock()
	fn, ok := r.extractors[provider]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return fn(resp)
}

// Providers returns the sorted provider ids that have an extractor.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.extractors))
	for id := range r.extractors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry with the built-in allow-list.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		_ = defaultRegistry.Register(ProviderHuggingFace, HuggingFace)
	})
	return defaultRegistry
}

// Extract looks up provider in the default registry.
func Extract(resp *types.ChatCompletionResponse, provider string) *types.CompletionLogprobs {
	return Default().Extract(resp, provider)
}
