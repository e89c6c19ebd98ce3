// Package handler composes the HTTP handler groups.
package handler

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/llmshim/internal/metrics"
	"github.com/mandalnilabja/llmshim/internal/provider"
	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/tokenizer"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler/proxy"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler/usage"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Proxy *proxy.Handlers
	Usage *usage.Handlers
	Infra *infra.Handlers
}

// Deps are the shared dependencies handed to every handler group.
type Deps struct {
	Router        *provider.Router
	Storage       storage.Storage
	Tokenizer     tokenizer.Tokenizer
	Cache         *ristretto.Cache[string, any]
	UsageCacheTTL time.Duration
	Metrics       *metrics.Collector
	Logger        *slog.Logger
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(d Deps) *Repo {
	startTime := time.Now()
	return &Repo{
		Proxy: proxy.New(d.Router, d.Storage, d.Tokenizer, d.Metrics, d.Logger),
		Usage: usage.New(d.Storage, d.Cache, d.UsageCacheTTL),
		Infra: infra.New(d.Storage, startTime),
	}
}
