// Package stream observes streamed chat completions: it sums usage
// fragments and, when asked, closes the stream with one usage-only chunk.
package stream

import (
	"errors"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// ErrStreamClosed is returned when a chunk arrives after Close.
var ErrStreamClosed = errors.New("stream: accumulator closed")

// State is the accumulator lifecycle state.
type State int

const (
	StateAccumulating State = iota
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// UsageAccumulator tracks one streamed call. It is not safe for concurrent
// use.
type UsageAccumulator struct {
	includeUsage bool
	state        State
	usage        *types.Usage

	// Identity of the most recent chunk, reused by the synthetic chunk.
	id      string
	model   string
	created int64

	finishReason string
}

// NewUsageAccumulator creates an accumulator. includeUsage mirrors the
// caller's stream_options.include_usage.
func NewUsageAccumulator(includeUsage bool) *UsageAccumulator {
	return &UsageAccumulator{includeUsage: includeUsage}
}

// Observe records chunk and returns it unmodified.
func (a *UsageAccumulator) Observe(chunk *types.ChatCompletionChunk) (*types.ChatCompletionChunk, error) {
	if a.state == StateClosed {
		return nil, ErrStreamClosed
	}
	if chunk == nil {
		return nil, nil
	}

	if chunk.ID != "" {
		a.id = chunk.ID
	}
	if chunk.Model != "" {
		a.model = chunk.Model
	}
	if chunk.Created != 0 {
		a.created = chunk.Created
	}
	if chunk.Usage != nil {
		a.usage = types.CombineUsage(a.usage, chunk.Usage)
	}

	for _, choice := range chunk.Choices {
		if reason := choice.GetFinishReason(); reason != "" {
			a.finishReason = reason
		}
	}

	return chunk, nil
}

// Close ends the stream. With usage inclusion enabled it returns the
// synthetic usage-only chunk; otherwise, or when already closed, nil.
func (a *UsageAccumulator) Close() *types.ChatCompletionChunk {
	if a.state == StateClosed {
		return nil
	}
	a.state = StateClosed

	if !a.includeUsage {
		return nil
	}

	usage := types.Usage{}
	if a.usage != nil {
		usage = a.usage.Clone()
	}
	return &types.ChatCompletionChunk{
		ID:      a.id,
		Object:  types.ObjectChatCompletionChunk,
		Created: a.created,
		Model:   a.model,
		Choices: []types.ChunkChoice{},
		Usage:   &usage,
	}
}

// Usage returns a copy of the running total, or nil when no fragment arrived.
func (a *UsageAccumulator) Usage() *types.Usage {
	if a.usage == nil {
		return nil
	}
	u := a.usage.Clone()
	return &u
}

// State returns the current lifecycle state.
func (a *UsageAccumulator) State() State {
	return a.state
}

// FinishReason returns the last non-empty finish reason.
func (a *UsageAccumulator) FinishReason() string {
	return a.finishReason
}
