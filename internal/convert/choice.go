// Package convert translates chat completion payloads into the legacy
// text_completion shape and back.
package convert

import "github.com/mandalnilabja/llmshim/internal/types"

// ReshapeChoice turns a chat choice into a text choice. Missing content
// becomes empty text and a missing finish reason becomes null.
func ReshapeChoice(choice types.Choice, lp *types.CompletionLogprobs) types.CompletionChoice {
	out := types.CompletionChoice{
		Text:     choice.Message.Content.String(),
		Index:    choice.Index,
		Logprobs: lp,
	}
	if choice.FinishReason != "" {
		reason := choice.FinishReason
		out.FinishReason = &reason
	}
	return out
}
