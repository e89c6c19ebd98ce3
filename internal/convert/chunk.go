package convert

import "github.com/mandalnilabja/llmshim/internal/types"

// ChunkToTextCompletion converts one streamed chat chunk into a streamed
// text_completion chunk. Usage-only chunks keep their empty choice list.
func ChunkToTextCompletion(chunk *types.ChatCompletionChunk) *types.CompletionStreamChunk {
	if chunk == nil {
		return nil
	}

	out := &types.CompletionStreamChunk{
		ID:                chunk.ID,
		Object:            types.ObjectTextCompletion,
		Created:           chunk.Created,
		Model:             chunk.Model,
		SystemFingerprint: chunk.SystemFingerprint,
		Choices:           make([]types.CompletionStreamChoice, 0, len(chunk.Choices)),
	}
	if chunk.Usage != nil {
		u := chunk.Usage.Clone()
		out.Usage = &u
	}

	for _, choice := range chunk.Choices {
		sc := types.CompletionStreamChoice{
			Text:  choice.Delta.Content,
			Index: choice.Index,
		}
		if choice.FinishReason != nil {
			reason := *choice.FinishReason
			sc.FinishReason = &reason
		}
		out.Choices = append(out.Choices, sc)
	}

	return out
}
