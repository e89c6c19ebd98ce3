package logprobs

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/mandalnilabja/llmshim/internal/types"
)

const tgiPayload = `[{
	"generated_text": " world!",
	"details": {
		"finish_reason": "length",
		"generated_tokens": 2,
		"prefill": [{"id": 1, "text": "Hello", "logprob": null}],
		"tokens": [
			{"id": 2, "text": " world", "logprob": -0.25, "special": false},
			{"id": 3, "text": "!", "logprob": -1.5, "special": false}
		],
		"top_tokens": [
			[{"id": 2, "text": " world", "logprob": -0.25}, {"id": 9, "text": " there", "logprob": -2.0}],
			[{"id": 3, "text": "!", "logprob": -1.5}]
		]
	}
}]`

func hfResponse(raw any) *types.ChatCompletionResponse {
	return &types.ChatCompletionResponse{
		ID:     "chatcmpl-1",
		Hidden: types.HiddenParams{types.HiddenOriginalResponse: raw},
	}
}

func TestExtractNonAllowListedProviders(t *testing.T) {
	resp := hfResponse(json.RawMessage(tgiPayload))

	for _, provider := range []string{"", "openai", "openrouter", "azurefoundry", "HuggingFace"} {
		t.Run(provider, func(t *testing.T) {
			if got := Extract(resp, provider); got != nil {
				t.Errorf("Extract(%q) = %+v, want nil", provider, got)
			}
		})
	}
}

func TestExtractNilResponse(t *testing.T) {
	if got := Extract(nil, ProviderHuggingFace); got != nil {
		t.Errorf("Extract(nil) = %+v, want nil", got)
	}
}

func TestHuggingFaceExtract(t *testing.T) {
	want := &types.CompletionLogprobs{
		Tokens:        []string{"Hello", " world", "!"},
		TokenLogprobs: []float64{0, -0.25, -1.5},
		TopLogprobs: []map[string]float64{
			{},
			{" world": -0.25, " there": -2.0},
			{"!": -1.5},
		},
		TextOffset: []int{0, 5, 11},
	}

	var decoded any
	if err := json.Unmarshal([]byte(tgiPayload), &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	tests := []struct {
		name string
		raw  any
	}{
		{"raw message", json.RawMessage(tgiPayload)},
		{"bytes", []byte(tgiPayload)},
		{"string", tgiPayload},
		{"decoded values", decoded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(hfResponse(tt.raw), ProviderHuggingFace)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Extract() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestHuggingFaceSingleObject(t *testing.T) {
	raw := `{"generated_text":"a","details":{"tokens":[{"id":1,"text":"a","logprob":-0.1}]}}`

	got := HuggingFace(hfResponse(raw))
	if got.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", got.Len())
	}
	if len(got.TopLogprobs[0]) != 0 {
		t.Errorf("TopLogprobs[0] = %v, want empty map", got.TopLogprobs[0])
	}
}

func TestHuggingFaceUsesFirstGeneration(t *testing.T) {
	raw := `[
		{"generated_text":"A","details":{"tokens":[{"id":1,"text":"A","logprob":-0.1}]}},
		{"generated_text":"B","details":{"tokens":[{"id":2,"text":"B","logprob":-0.2}]}}
	]`

	got := HuggingFace(hfResponse(raw))
	if got == nil {
		t.Fatal("HuggingFace() = nil, want logprobs for the first generation")
	}
	if !reflect.DeepEqual(got.Tokens, []string{"A"}) {
		t.Errorf("Tokens = %v, want [A]", got.Tokens)
	}
	if !reflect.DeepEqual(got.TextOffset, []int{0}) {
		t.Errorf("TextOffset = %v, want [0]", got.TextOffset)
	}
	if !reflect.DeepEqual(got.TokenLogprobs, []float64{-0.1}) {
		t.Errorf("TokenLogprobs = %v, want [-0.1]", got.TokenLogprobs)
	}
}

func TestHuggingFaceMissingFields(t *testing.T) {
	tests := []struct {
		name string
		resp *types.ChatCompletionResponse
	}{
		{"no hidden params", &types.ChatCompletionResponse{}},
		{"no original response", &types.ChatCompletionResponse{Hidden: types.HiddenParams{"other": 1}}},
		{"missing details", hfResponse(`[{"generated_text":"hi"}]`)},
		{"malformed json", hfResponse(`{"details": [`)},
		{"empty list", hfResponse(`[]`)},
		{"wrong shape", hfResponse(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HuggingFace(tt.resp); got != nil {
				t.Errorf("HuggingFace() = %+v, want nil", got)
			}
		})
	}
}

func TestHuggingFaceEmptyDetails(t *testing.T) {
	got := HuggingFace(hfResponse(`[{"generated_text":"","details":{}}]`))
	if got == nil {
		t.Fatal("HuggingFace() = nil, want empty but present logprobs")
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	fn := func(*types.ChatCompletionResponse) *types.CompletionLogprobs {
		return &types.CompletionLogprobs{}
	}

	if err := reg.Register("custom", fn); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := reg.Register("custom", fn); !errors.Is(err, ErrDuplicateProvider) {
		t.Errorf("Register() duplicate error = %v, want %v", err, ErrDuplicateProvider)
	}
	if err := reg.Register("", fn); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("Register() empty id error = %v, want %v", err, ErrInvalidExtractor)
	}
	if err := reg.Register("other", nil); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("Register() nil fn error = %v, want %v", err, ErrInvalidExtractor)
	}

	if got := reg.Extract(&types.ChatCompletionResponse{}, "custom"); got == nil {
		t.Error("Extract() = nil for registered provider")
	}
	if got := reg.Extract(&types.ChatCompletionResponse{}, ProviderHuggingFace); got != nil {
		t.Error("Extract() on a fresh registry should not know huggingface")
	}
}

func TestDefaultProviders(t *testing.T) {
	got := Default().Providers()
	want := []string{ProviderHuggingFace}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Providers() = %v, want %v", got, want)
	}
}
