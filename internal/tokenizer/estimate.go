package tokenizer

import (
	"log/slog"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// EstimateChat returns a best-effort prompt token count for req, or 0 when
// counting fails.
func EstimateChat(t Tokenizer, req *types.ChatCompletionRequest) int {
	if t == nil || req == nil {
		return 0
	}
	n, err := t.CountRequest(req)
	if err != nil {
		slog.Debug("prompt token estimate failed", "model", req.Model, "error", err)
		return 0
	}
	return n
}

// EstimateCompletion returns a best-effort prompt token count for a legacy
// completions request, or 0 when counting fails.
func EstimateCompletion(t Tokenizer, req *types.CompletionRequest) int {
	if t == nil || req == nil {
		return 0
	}
	n, err := t.CountPrompt(req.Prompt, req.Model)
	if err != nil {
		slog.Debug("prompt token estimate failed", "model", req.Model, "error", err)
		return 0
	}
	return n
}
