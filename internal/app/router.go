package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/llmshim/internal/metrics"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler"
	"github.com/mandalnilabja/llmshim/internal/transport/http/middleware"
	"github.com/mandalnilabja/llmshim/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger  *slog.Logger
	Limiter *ratelimit.Limiter
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())

	// Proxy routes, rate limited per client
	limit := ratelimit.Middleware(opts.Limiter)
	mux.Handle("POST /v1/completions", limit(http.HandlerFunc(repo.Proxy.Completions)))
	mux.Handle("POST /v1/chat/completions", limit(http.HandlerFunc(repo.Proxy.ChatCompletions)))
	mux.HandleFunc("GET /v1/models", repo.Proxy.ListModels)
	mux.HandleFunc("GET /v1/models/{model...}", repo.Proxy.GetModel)

	// Usage and logs need storage
	if repo.Usage.Storage != nil {
		mux.HandleFunc("GET /api/usage", repo.Usage.GetUsageStats)
		mux.HandleFunc("GET /api/usage/daily", repo.Usage.GetDailyUsage)
		mux.HandleFunc("GET /api/logs", repo.Usage.GetRequestLogs)
		mux.HandleFunc("DELETE /api/logs", repo.Usage.DeleteRequestLogs)
	}

	// Root returns JSON status
	mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Order: outer to inner
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.CORS,
		middleware.RequestLogger(logger),
	)
}
