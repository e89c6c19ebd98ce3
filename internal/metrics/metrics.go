// Package metrics exposes gateway counters to Prometheus.
package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// Token kinds used as the "kind" label.
const (
	KindPrompt     = "prompt"
	KindCompletion = "completion"
	KindReasoning  = "reasoning"
	KindCached     = "cached"
)

var (
	tokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmshim_tokens_total",
			Help: "Tokens reported in normalized usage by provider, model and kind",
		},
		[]string{"provider", "model", "kind"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmshim_requests_total",
			Help: "Gateway requests by endpoint, provider and status code",
		},
		[]string{"endpoint", "provider", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmshim_request_duration_seconds",
			Help:    "Upstream round trip duration in seconds by provider",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"provider", "streaming"},
	)

	syntheticUsageChunks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmshim_synthetic_usage_chunks_total",
			Help: "Usage-only chunks appended to client streams",
		},
		[]string{"endpoint"},
	)

	logprobsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmshim_logprobs_extracted_total",
			Help: "Text completion responses that carried extracted log probabilities",
		},
		[]string{"provider"},
	)
)

// Collector provides convenience methods for recording metrics.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a new metrics collector.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// RecordUsage adds the token counts of u. Nil usage records nothing.
func (c *Collector) RecordUsage(provider, model string, u *types.Usage) {
	if u == nil {
		return
	}
	tokensTotal.WithLabelValues(provider, model, KindPrompt).Add(float64(u.PromptTokens))
	tokensTotal.WithLabelValues(provider, model, KindCompletion).Add(float64(u.CompletionTokens))
	if u.CompletionTokensDetails != nil {
		tokensTotal.WithLabelValues(provider, model, KindReasoning).Add(float64(u.CompletionTokensDetails.ReasoningTokens))
	}
	if u.PromptTokensDetails != nil {
		tokensTotal.WithLabelValues(provider, model, KindCached).Add(float64(u.PromptTokensDetails.CachedTokens))
	}
}

// RecordRequest counts one finished request and its upstream duration.
func (c *Collector) RecordRequest(endpoint, provider string, status int, streaming bool, duration time.Duration) {
	requestsTotal.WithLabelValues(endpoint, provider, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(provider, strconv.FormatBool(streaming)).Observe(duration.Seconds())
	if status >= 500 {
		c.logger.Debug("upstream request failed", "endpoint", endpoint, "provider", provider, "status", status)
	}
}

// IncrementSyntheticUsage counts a usage-only chunk written to a client.
func (c *Collector) IncrementSyntheticUsage(endpoint string) {
	syntheticUsageChunks.WithLabelValues(endpoint).Inc()
}

// IncrementLogprobs counts a response whose choices carried log probabilities.
func (c *Collector) IncrementLogprobs(provider string) {
	logprobsExtracted.WithLabelValues(provider).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
