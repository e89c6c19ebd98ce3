package convert

import (
	"strings"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// CompletionToChatRequest maps a legacy completions request onto a chat
// request. All prompts become a single user message joined by newlines.
// An integer logprobs n turns into logprobs=true with top_logprobs=n.
func CompletionToChatRequest(req *types.CompletionRequest) *types.ChatCompletionRequest {
	if req == nil {
		return nil
	}

	chat := &types.ChatCompletionRequest{
		Model: req.Model,
		Messages: []types.Message{
			types.NewTextMessage(types.RoleUser, strings.Join(req.Prompt.Values, "\n")),
		},
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		N:                req.N,
		MaxTokens:        req.MaxTokens,
		PresencePenalty:  req.PresencePenalty,
		FrequencyPenalty: req.FrequencyPenalty,
		Stop:             req.Stop,
		Stream:           req.Stream,
		StreamOptions:    req.StreamOptions,
		Seed:             req.Seed,
		User:             req.User,
		LogitBias:        req.LogitBias,
	}

	if req.Logprobs != nil {
		enabled := true
		n := *req.Logprobs
		chat.Logprobs = &enabled
		chat.TopLogprobs = &n
	}

	return chat
}
