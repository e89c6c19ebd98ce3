package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mandalnilabja/llmshim/internal/types"
)

func TestRecordUsage(t *testing.T) {
	c := NewCollector(nil)
	prompt := tokensTotal.WithLabelValues("test-usage", "m", KindPrompt)
	reasoning := tokensTotal.WithLabelValues("test-usage", "m", KindReasoning)
	before := testutil.ToFloat64(prompt)

	c.RecordUsage("test-usage", "m", &types.Usage{
		PromptTokens:            7,
		CompletionTokens:        3,
		TotalTokens:             10,
		CompletionTokensDetails: &types.CompletionTokenDetails{ReasoningTokens: 2},
	})
	c.RecordUsage("test-usage", "m", nil)

	if got := testutil.ToFloat64(prompt) - before; got != 7 {
		t.Errorf("prompt tokens delta = %v, want 7", got)
	}
	if got := testutil.ToFloat64(reasoning); got != 2 {
		t.Errorf("reasoning tokens = %v, want 2", got)
	}
}

func TestRecordRequestAndCounters(t *testing.T) {
	c := NewCollector(nil)
	c.RecordRequest("completions", "test-req", 200, true, 150*time.Millisecond)
	c.IncrementSyntheticUsage("test-endpoint")
	c.IncrementLogprobs("test-lp")

	if got := testutil.ToFloat64(requestsTotal.WithLabelValues("completions", "test-req", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(syntheticUsageChunks.WithLabelValues("test-endpoint")); got != 1 {
		t.Errorf("synthetic usage chunks = %v, want 1", got)
	}
	if got := testutil.ToFloat64(logprobsExtracted.WithLabelValues("test-lp")); got != 1 {
		t.Errorf("logprobs extracted = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	NewCollector(nil).IncrementSyntheticUsage("test-handler")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "llmshim_synthetic_usage_chunks_total") {
		t.Error("metrics output missing llmshim_synthetic_usage_chunks_total")
	}
}
