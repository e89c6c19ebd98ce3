package proxy

import (
	"time"

	"github.com/mandalnilabja/llmshim/internal/convert"
	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// outcome describes one finished request for the log and metrics.
type outcome struct {
	endpoint     string
	requestID    string
	provider     string
	model        string
	streaming    bool
	usage        *types.Usage
	finishReason string
	status       int
	err          error
	start        time.Time

	// estimate counts prompt tokens locally; called only when the
	// normalized usage has none.
	estimate func() int
}

// record writes the outcome to metrics and, when configured, to storage.
func (h *Handlers) record(o outcome) {
	usage := convert.NormalizeUsage(o.usage)
	duration := time.Since(o.start)

	h.Metrics.RecordRequest(o.endpoint, o.provider, o.status, o.streaming, duration)
	if o.err == nil {
		h.Metrics.RecordUsage(o.provider, o.model, usage)
	}

	if h.Storage == nil {
		return
	}

	log := &storage.RequestLog{
		RequestID:        o.requestID,
		Endpoint:         o.endpoint,
		Model:            o.model,
		Provider:         o.provider,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		IsStreaming:      o.streaming,
		FinishReason:     o.finishReason,
		StatusCode:       o.status,
		DurationMs:       duration.Milliseconds(),
	}
	if usage.CompletionTokensDetails != nil {
		log.ReasoningTokens = usage.CompletionTokensDetails.ReasoningTokens
	}
	if usage.PromptTokensDetails != nil {
		log.CachedTokens = usage.PromptTokensDetails.CachedTokens
	}
	if o.err != nil {
		log.ErrorMessage = errorMessage(o.err)
	}

	// A total above prompt+completion already counts the unreported prompt.
	if o.err == nil && log.PromptTokens == 0 && log.TotalTokens <= log.CompletionTokens && o.estimate != nil {
		if n := o.estimate(); n > 0 {
			log.PromptTokens = n
			log.TotalTokens += n
			log.PromptEstimated = true
		}
	}

	if err := storage.Record(h.Storage, log); err != nil {
		h.Logger.Warn("failed to record request", "request_id", o.requestID, "error", err)
	}
}
