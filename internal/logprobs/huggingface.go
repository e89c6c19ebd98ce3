package logprobs

import (
	"encoding/json"
	"log/slog"
	"unicode/utf8"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// tgiGeneration is one element of a text-generation-inference /generate
// response.
type tgiGeneration struct {
	GeneratedText string      `json:"generated_text"`
	Details       *tgiDetails `json:"details"`
}

type tgiDetails struct {
	FinishReason    string       `json:"finish_reason"`
	GeneratedTokens int          `json:"generated_tokens"`
	Prefill         []tgiToken   `json:"prefill"`
	Tokens          []tgiToken   `json:"tokens"`
	TopTokens       [][]tgiToken `json:"top_tokens"`
}

type tgiToken struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Logprob *float64 `json:"logprob"` // null for the first prefill token
	Special bool     `json:"special"`
}

func (t tgiToken) logprob() float64 {
	if t.Logprob == nil {
		return 0
	}
	return *t.Logprob
}

// HuggingFace extracts logprobs from the raw TGI payload stored under
// types.HiddenOriginalResponse. Prefill tokens come first and carry no
// alternatives; generated token i takes its alternatives from top_tokens[i].
func HuggingFace(resp *types.ChatCompletionResponse) *types.CompletionLogprobs {
	raw := resp.Hidden.Get(types.HiddenOriginalResponse)
	if raw == nil {
		return nil
	}

	generations, err := decodeGenerations(raw)
	if err != nil {
		slog.Debug("huggingface logprobs: unreadable payload", "error", err)
		return nil
	}
	if len(generations) == 0 {
		return nil
	}

	// The canonical choice is built from the first generation only.
	gen := generations[0]
	if gen.Details == nil {
		return nil
	}

	out := &types.CompletionLogprobs{
		Tokens:        []string{},
		TokenLogprobs: []float64{},
		TopLogprobs:   []map[string]float64{},
		TextOffset:    []int{},
	}
	offset := 0
	for _, tok := range gen.Details.Prefill {
		out.Append(tok.Text, tok.logprob(), nil, offset)
		offset += utf8.RuneCountInString(tok.Text)
	}
	for i, tok := range gen.Details.Tokens {
		var top map[string]float64
		if i < len(gen.Details.TopTokens) {
			top = make(map[string]float64, len(gen.Details.TopTokens[i]))
			for _, alt := range gen.Details.TopTokens[i] {
				top[alt.Text] = alt.logprob()
			}
		}
		out.Append(tok.Text, tok.logprob(), top, offset)
		offset += utf8.RuneCountInString(tok.Text)
	}
	return out
}

// decodeGenerations accepts the stored payload as raw JSON or as values
// already decoded into Go, holding either one generation or a list.
func decodeGenerations(raw any) ([]tgiGeneration, error) {
	var data []byte
	switch v := raw.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		data = encoded
	}

	var list []tgiGeneration
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single tgiGeneration
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []tgiGeneration{single}, nil
}
