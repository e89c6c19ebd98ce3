package huggingface

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// generateRequest is the TGI /generate body.
type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens        *int     `json:"max_new_tokens,omitempty"`
	Temperature         *float64 `json:"temperature,omitempty"`
	TopP                *float64 `json:"top_p,omitempty"`
	Seed                *int     `json:"seed,omitempty"`
	Stop                []string `json:"stop,omitempty"`
	TopNTokens          *int     `json:"top_n_tokens,omitempty"`
	Details             bool     `json:"details"`
	DecoderInputDetails bool     `json:"decoder_input_details"`
	ReturnFullText      bool     `json:"return_full_text"`
}

type generation struct {
	GeneratedText string   `json:"generated_text"`
	Details       *details `json:"details"`
}

type details struct {
	FinishReason    string            `json:"finish_reason"`
	GeneratedTokens int               `json:"generated_tokens"`
	Prefill         []json.RawMessage `json:"prefill"`
}

var errEmptyGeneration = errors.New("huggingface: empty generation list")

// buildRequest flattens the chat into a role-prefixed prompt. Details are
// always requested; prefill details only when logprobs are.
func buildRequest(req *types.ChatCompletionRequest) generateRequest {
	var b strings.Builder
	for _, msg := range req.Messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content.String())
	}
	b.WriteString(types.RoleAssistant + ":")

	maxTokens := req.GetMaxTokens()
	params := generateParameters{
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Seed:        req.Seed,
		Stop:        req.Stop.Values,
		Details:     true,
	}
	if maxTokens > 0 {
		params.MaxNewTokens = &maxTokens
	}
	if req.Logprobs != nil && *req.Logprobs {
		params.DecoderInputDetails = true
		params.TopNTokens = req.TopLogprobs
	}

	return generateRequest{Inputs: b.String(), Parameters: params}
}

// firstGeneration accepts both the list form of the serverless API and the
// single object returned by a TGI server.
func firstGeneration(body []byte) (generation, error) {
	var list []generation
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return generation{}, errEmptyGeneration
		}
		return list[0], nil
	}

	var single generation
	if err := json.Unmarshal(body, &single); err != nil {
		return generation{}, fmt.Errorf("decode upstream response: %w", err)
	}
	return single, nil
}

func mapFinishReason(d *details) string {
	if d == nil {
		return ""
	}
	switch d.FinishReason {
	case "length":
		return types.FinishReasonLength
	case "eos_token", "stop_sequence":
		return types.FinishReasonStop
	default:
		return d.FinishReason
	}
}

// usageOf counts prefill tokens as the prompt. Without details there is
// nothing to report.
func usageOf(d *details) *types.Usage {
	if d == nil {
		return nil
	}
	u := types.Usage{
		PromptTokens:     len(d.Prefill),
		CompletionTokens: d.GeneratedTokens,
	}
	u.TotalTokens = u.PromptTokens + u.CompletionTokens
	return &u
}
