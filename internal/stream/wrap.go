package stream

import (
	"iter"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// WithUsage forwards every chunk of seq through a fresh accumulator and,
// after a clean end of stream, yields the synthetic usage chunk when
// includeUsage is set. An upstream error or an early stop by the consumer
// ends the sequence without it.
func WithUsage(seq iter.Seq2[*types.ChatCompletionChunk, error], includeUsage bool) iter.Seq2[*types.ChatCompletionChunk, error] {
	return Observed(seq, NewUsageAccumulator(includeUsage))
}

// Observed is WithUsage with a caller-owned accumulator, so the caller can
// read totals once the sequence is drained.
func Observed(seq iter.Seq2[*types.ChatCompletionChunk, error], acc *UsageAccumulator) iter.Seq2[*types.ChatCompletionChunk, error] {
	return func(yield func(*types.ChatCompletionChunk, error) bool) {
		for chunk, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			out, err := acc.Observe(chunk)
			if err != nil {
				yield(nil, err)
				return
			}
			if out == nil {
				continue
			}
			if !yield(out, nil) {
				return
			}
		}

		if final := acc.Close(); final != nil {
			yield(final, nil)
		}
	}
}
