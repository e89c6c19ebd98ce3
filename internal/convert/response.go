package convert

import (
	"github.com/mandalnilabja/llmshim/internal/logprobs"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// ChatToTextCompletion converts resp into target using the default logprobs
// registry. See ConvertWith.
func ChatToTextCompletion(resp *types.ChatCompletionResponse, target *types.CompletionResponse, provider string) *types.CompletionResponse {
	return ConvertWith(logprobs.Default(), resp, target, provider)
}

// ConvertWith writes resp into target and returns target. Fields of target
// that the chat response does not own (such as a pre-seeded
// SystemFingerprint) are left alone. A nil target allocates a new response.
//
// Calling it twice on the same target is not idempotent.
func ConvertWith(reg *logprobs.Registry, resp *types.ChatCompletionResponse, target *types.CompletionResponse, provider string) *types.CompletionResponse {
	if target == nil {
		target = &types.CompletionResponse{}
	}
	target.Object = types.ObjectTextCompletion
	if resp == nil {
		target.Choices = []types.CompletionChoice{}
		target.Usage = NormalizeUsage(nil)
		return target
	}

	target.ID = resp.ID
	target.Created = resp.Created
	target.Model = resp.Model
	if resp.SystemFingerprint != "" {
		target.SystemFingerprint = resp.SystemFingerprint
	}

	var lp *types.CompletionLogprobs
	if reg != nil && provider != "" {
		lp = reg.Extract(resp, provider)
	}

	choices := make([]types.CompletionChoice, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, ReshapeChoice(choice, lp.Clone()))
	}
	target.Choices = choices
	target.Usage = NormalizeUsage(resp.Usage)

	return target
}

// NormalizeUsage copies u with the default-filling rule applied. Missing
// usage becomes all zeros.
func NormalizeUsage(u *types.Usage) *types.Usage {
	if u == nil {
		return &types.Usage{}
	}
	n := u.Normalized()
	return &n
}
