// Package proxy serves the OpenAI-compatible /v1 endpoints: it routes each
// request to a provider and normalizes what comes back.
package proxy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/llmshim/internal/logprobs"
	"github.com/mandalnilabja/llmshim/internal/metrics"
	"github.com/mandalnilabja/llmshim/internal/provider"
	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/tokenizer"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// Handlers holds the dependencies for proxy HTTP handlers.
type Handlers struct {
	Router    *provider.Router
	Storage   storage.Storage
	Tokenizer tokenizer.Tokenizer
	Metrics   *metrics.Collector
	Logprobs  *logprobs.Registry
	Logger    *slog.Logger
}

// New creates a new instance of proxy handlers. Storage and tokenizer may be
// nil; requests are then served without being recorded or estimated.
func New(router *provider.Router, store storage.Storage, tok tokenizer.Tokenizer, collector *metrics.Collector, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	return &Handlers{
		Router:    router,
		Storage:   store,
		Tokenizer: tok,
		Metrics:   collector,
		Logprobs:  logprobs.Default(),
		Logger:    logger,
	}
}

// errorStatus maps a provider or routing error to the status returned to
// the client.
func errorStatus(err error) int {
	var upErr *provider.UpstreamError
	switch {
	case errors.As(err, &upErr):
		return upErr.StatusCode
	case errors.Is(err, provider.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, provider.ErrNoAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// errorMessage prefers the upstream's own message over the wrapped chain.
func errorMessage(err error) string {
	var upErr *provider.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return err.Error()
}

// writeProviderError writes an OpenAI-compatible error and returns the
// status it used.
func writeProviderError(w http.ResponseWriter, err error) int {
	status := errorStatus(err)
	types.WriteError(w, status, types.NewAPIError(errorMessage(err), types.ErrorTypeForStatus(status)))
	return status
}
