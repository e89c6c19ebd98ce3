package proxy

import (
	"iter"
	"net/http"

	"github.com/mandalnilabja/llmshim/internal/stream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// relayResult summarizes a relayed stream.
type relayResult struct {
	usage        *types.Usage
	finishReason string
	synthetic    bool
	err          error
}

// relay writes seq to w as SSE events, each chunk converted by emit.
//
// Upstream is always asked for usage, so usage-only chunks it sends are
// swallowed and usage fields are stripped from forwarded chunks. The client
// sees usage exactly once, in the accumulator's closing chunk, and only when
// includeUsage is set.
func relay(w http.ResponseWriter, seq iter.Seq2[*types.ChatCompletionChunk, error], includeUsage bool, emit func(*types.ChatCompletionChunk) any) relayResult {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	acc := stream.NewUsageAccumulator(includeUsage)
	var res relayResult

	for chunk, err := range stream.Observed(seq, acc) {
		if err != nil {
			res.err = err
			break
		}

		if acc.State() == stream.StateClosed {
			res.synthetic = true
		} else {
			if chunk.IsUsageOnly() {
				continue
			}
			if chunk.Usage != nil {
				stripped := *chunk
				stripped.Usage = nil
				chunk = &stripped
			}
		}

		if err := stream.WriteSSE(w, emit(chunk)); err != nil {
			res.err = err
			break
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	if res.err != nil {
		_ = stream.WriteSSE(w, types.NewAPIError(errorMessage(res.err), types.ErrorTypeUpstream))
	} else {
		_ = stream.WriteDone(w)
	}
	if flusher != nil {
		flusher.Flush()
	}

	res.usage = acc.Usage()
	res.finishReason = acc.FinishReason()
	return res
}
