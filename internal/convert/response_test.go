package convert

import (
	"encoding/json"
	"testing"

	"github.com/mandalnilabja/llmshim/internal/logprobs"
	"github.com/mandalnilabja/llmshim/internal/types"
)

func chatChoice(index int, content, finish string) types.Choice {
	return types.Choice{
		Index:        index,
		Message:      types.NewTextMessage(types.RoleAssistant, content),
		FinishReason: finish,
	}
}

func TestChatToTextCompletionSingleChoice(t *testing.T) {
	resp := &types.ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  types.ObjectChatCompletion,
		Created: 1700000000,
		Model:   "gpt-4o-mini",
		Choices: []types.Choice{chatChoice(0, "Hello, world!", types.FinishReasonStop)},
		Usage:   &types.Usage{TotalTokens: 10, CompletionTokens: 10},
	}

	got := ChatToTextCompletion(resp, &types.CompletionResponse{}, "")

	if got.Object != types.ObjectTextCompletion {
		t.Errorf("Object = %q, want %q", got.Object, types.ObjectTextCompletion)
	}
	if got.ID != resp.ID || got.Created != resp.Created || got.Model != resp.Model {
		t.Errorf("identity = (%q, %d, %q), want (%q, %d, %q)",
			got.ID, got.Created, got.Model, resp.ID, resp.Created, resp.Model)
	}
	if len(got.Choices) != 1 {
		t.Fatalf("len(Choices) = %d, want 1", len(got.Choices))
	}
	if got.Choices[0].Text != "Hello, world!" {
		t.Errorf("Text = %q, want %q", got.Choices[0].Text, "Hello, world!")
	}
	if got.Choices[0].GetFinishReason() != types.FinishReasonStop {
		t.Errorf("FinishReason = %q, want %q", got.Choices[0].GetFinishReason(), types.FinishReasonStop)
	}
	if got.Choices[0].Logprobs != nil {
		t.Errorf("Logprobs = %+v, want nil", got.Choices[0].Logprobs)
	}

	want := types.Usage{CompletionTokens: 10, PromptTokens: 0, TotalTokens: 10}
	if got.Usage == nil || !got.Usage.Equal(want) {
		t.Errorf("Usage = %+v, want %+v", got.Usage, want)
	}
}

func TestChatToTextCompletionMultipleChoices(t *testing.T) {
	resp := &types.ChatCompletionResponse{
		ID: "chatcmpl-2",
		Choices: []types.Choice{
			chatChoice(0, "first", types.FinishReasonStop),
			chatChoice(1, "second", types.FinishReasonLength),
		},
		Usage: &types.Usage{TotalTokens: 20},
	}

	got := ChatToTextCompletion(resp, nil, "")

	wantChoices := []struct {
		text   string
		finish string
	}{
		{"first", types.FinishReasonStop},
		{"second", types.FinishReasonLength},
	}
	if len(got.Choices) != len(wantChoices) {
		t.Fatalf("len(Choices) = %d, want %d", len(got.Choices), len(wantChoices))
	}
	for i, want := range wantChoices {
		c := got.Choices[i]
		if c.Index != i || c.Text != want.text || c.GetFinishReason() != want.finish {
			t.Errorf("Choices[%d] = %+v, want index %d text %q finish %q", i, c, i, want.text, want.finish)
		}
	}

	wantUsage := types.Usage{TotalTokens: 20}
	if !got.Usage.Equal(wantUsage) {
		t.Errorf("Usage = %+v, want %+v", got.Usage, wantUsage)
	}
}

func TestChatToTextCompletionEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		resp      *types.ChatCompletionResponse
		wantLen   int
		wantTexts []string
	}{
		{
			name:    "zero choices",
			resp:    &types.ChatCompletionResponse{ID: "x"},
			wantLen: 0,
		},
		{
			name: "null content",
			resp: &types.ChatCompletionResponse{
				Choices: []types.Choice{{Index: 0, Message: types.Message{Role: types.RoleAssistant}}},
			},
			wantLen:   1,
			wantTexts: []string{""},
		},
		{
			name:    "nil response",
			resp:    nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChatToTextCompletion(tt.resp, nil, "openai")
			if got.Choices == nil {
				t.Fatal("Choices = nil, want non-nil slice")
			}
			if len(got.Choices) != tt.wantLen {
				t.Fatalf("len(Choices) = %d, want %d", len(got.Choices), tt.wantLen)
			}
			for i, text := range tt.wantTexts {
				if got.Choices[i].Text != text {
					t.Errorf("Choices[%d].Text = %q, want %q", i, got.Choices[i].Text, text)
				}
			}
			if got.Usage == nil || !got.Usage.Equal(types.Usage{}) {
				t.Errorf("Usage = %+v, want zero usage", got.Usage)
			}
		})
	}
}

func TestChatToTextCompletionKeepsTarget(t *testing.T) {
	target := &types.CompletionResponse{
		ID:                "pre-seeded",
		Object:            "something-else",
		SystemFingerprint: "fp_seed",
	}
	resp := &types.ChatCompletionResponse{ID: "chatcmpl-9", Model: "m"}

	got := ChatToTextCompletion(resp, target, "")

	if got != target {
		t.Error("ChatToTextCompletion() did not return the supplied target")
	}
	if target.ID != "chatcmpl-9" {
		t.Errorf("ID = %q, want copied from chat response", target.ID)
	}
	if target.Object != types.ObjectTextCompletion {
		t.Errorf("Object = %q, want %q", target.Object, types.ObjectTextCompletion)
	}
	if target.SystemFingerprint != "fp_seed" {
		t.Errorf("SystemFingerprint = %q, want pre-seeded value kept", target.SystemFingerprint)
	}
}

func TestChatToTextCompletionFreshTargetsAreEqual(t *testing.T) {
	resp := &types.ChatCompletionResponse{
		ID:      "chatcmpl-3",
		Choices: []types.Choice{chatChoice(0, "hi", types.FinishReasonStop)},
		Usage:   &types.Usage{PromptTokens: 2, CompletionTokens: 1, TotalTokens: 3},
	}

	a, err := json.Marshal(ChatToTextCompletion(resp, nil, ""))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	b, err := json.Marshal(ChatToTextCompletion(resp, &types.CompletionResponse{}, ""))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("conversions differ:\n%s\n%s", a, b)
	}
}

func TestChatToTextCompletionUsageIsCopied(t *testing.T) {
	usage := &types.Usage{
		CompletionTokens:        4,
		TotalTokens:             4,
		CompletionTokensDetails: &types.CompletionTokenDetails{ReasoningTokens: 2},
	}
	resp := &types.ChatCompletionResponse{Usage: usage}

	got := ChatToTextCompletion(resp, nil, "")
	got.Usage.CompletionTokensDetails.ReasoningTokens = 100

	if usage.CompletionTokensDetails.ReasoningTokens != 2 {
		t.Error("converted usage shares details with the chat response")
	}
}

func TestConvertWithLogprobs(t *testing.T) {
	reg := logprobs.NewRegistry()
	err := reg.Register("fake", func(*types.ChatCompletionResponse) *types.CompletionLogprobs {
		lp := &types.CompletionLogprobs{}
		lp.Append("hi", -0.1, nil, 0)
		return lp
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	resp := &types.ChatCompletionResponse{
		Choices: []types.Choice{
			chatChoice(0, "hi", types.FinishReasonStop),
			chatChoice(1, "hi", types.FinishReasonStop),
		},
	}

	got := ConvertWith(reg, resp, nil, "fake")
	for i, c := range got.Choices {
		if c.Logprobs.Len() != 1 {
			t.Fatalf("Choices[%d].Logprobs.Len() = %d, want 1", i, c.Logprobs.Len())
		}
	}
	if got.Choices[0].Logprobs == got.Choices[1].Logprobs {
		t.Error("choices share one logprobs value")
	}

	if got := ConvertWith(reg, resp, nil, ""); got.Choices[0].Logprobs != nil {
		t.Error("empty provider should never yield logprobs")
	}
}

func TestChatToTextCompletionHuggingFace(t *testing.T) {
	raw := json.RawMessage(`[{"generated_text":"ok","details":{"tokens":[{"id":1,"text":"ok","logprob":-0.3}],"top_tokens":[[{"id":1,"text":"ok","logprob":-0.3}]]}}]`)
	resp := &types.ChatCompletionResponse{
		Choices: []types.Choice{chatChoice(0, "ok", types.FinishReasonStop)},
		Hidden:  types.HiddenParams{types.HiddenOriginalResponse: raw},
	}

	got := ChatToTextCompletion(resp, nil, logprobs.ProviderHuggingFace)
	lp := got.Choices[0].Logprobs
	if lp == nil {
		t.Fatal("Logprobs = nil, want extracted values")
	}
	if lp.Tokens[0] != "ok" || lp.TokenLogprobs[0] != -0.3 || lp.TopLogprobs[0]["ok"] != -0.3 {
		t.Errorf("Logprobs = %+v", lp)
	}

	if got := ChatToTextCompletion(resp, nil, "openai"); got.Choices[0].Logprobs != nil {
		t.Error("non allow-listed provider produced logprobs")
	}
}

func TestCompletionResponseJSONShape(t *testing.T) {
	resp := &types.ChatCompletionResponse{
		ID:      "chatcmpl-4",
		Choices: []types.Choice{{Index: 0, Message: types.Message{Role: types.RoleAssistant}}},
	}

	data, err := json.Marshal(ChatToTextCompletion(resp, nil, ""))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded struct {
		Object  string           `json:"object"`
		Choices []map[string]any `json:"choices"`
		Usage   map[string]any   `json:"usage"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if decoded.Object != "text_completion" {
		t.Errorf("object = %q, want text_completion", decoded.Object)
	}
	choice := decoded.Choices[0]
	if v, ok := choice["logprobs"]; !ok || v != nil {
		t.Errorf("logprobs = %v (present %v), want explicit null", v, ok)
	}
	if _, ok := choice["finish_reason"]; ok {
		t.Error("finish_reason should be omitted when absent")
	}
	if decoded.Usage["total_tokens"] != float64(0) {
		t.Errorf("usage = %v, want zero counters", decoded.Usage)
	}
}
