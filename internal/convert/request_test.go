package convert

import (
	"testing"

	"github.com/mandalnilabja/llmshim/internal/types"
)

func TestCompletionToChatRequest(t *testing.T) {
	maxTokens := 16
	temp := 0.2
	n := 3

	req := &types.CompletionRequest{
		Model:         "gpt-3.5-turbo-instruct",
		Prompt:        types.CompletionPrompt{Values: []string{"one", "two"}},
		MaxTokens:     &maxTokens,
		Temperature:   &temp,
		Stream:        true,
		StreamOptions: &types.StreamOptions{IncludeUsage: true},
		Stop:          types.Stop{Values: []string{"\n\n"}},
		Logprobs:      &n,
	}

	got := CompletionToChatRequest(req)

	if got.Model != req.Model {
		t.Errorf("Model = %q, want %q", got.Model, req.Model)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(got.Messages))
	}
	if got.Messages[0].Role != types.RoleUser || got.Messages[0].Content.String() != "one\ntwo" {
		t.Errorf("Messages[0] = %+v, want user message %q", got.Messages[0], "one\ntwo")
	}
	if got.GetMaxTokens() != maxTokens {
		t.Errorf("GetMaxTokens() = %d, want %d", got.GetMaxTokens(), maxTokens)
	}
	if got.Temperature == nil || *got.Temperature != temp {
		t.Errorf("Temperature = %v, want %v", got.Temperature, temp)
	}
	if !got.IsStreaming() || !got.IncludeUsage() {
		t.Errorf("streaming = %v include usage = %v, want both true", got.IsStreaming(), got.IncludeUsage())
	}
	if len(got.Stop.Values) != 1 || got.Stop.Values[0] != "\n\n" {
		t.Errorf("Stop = %v, want [\\n\\n]", got.Stop.Values)
	}
	if got.Logprobs == nil || !*got.Logprobs {
		t.Error("Logprobs should be enabled")
	}
	if got.TopLogprobs == nil || *got.TopLogprobs != n {
		t.Errorf("TopLogprobs = %v, want %d", got.TopLogprobs, n)
	}
}

func TestCompletionToChatRequestWithoutLogprobs(t *testing.T) {
	got := CompletionToChatRequest(&types.CompletionRequest{
		Model:  "m",
		Prompt: types.CompletionPrompt{Values: []string{"hi"}},
	})
	if got.Logprobs != nil || got.TopLogprobs != nil {
		t.Errorf("Logprobs = %v TopLogprobs = %v, want nil", got.Logprobs, got.TopLogprobs)
	}
	if got.Messages[0].Content.String() != "hi" {
		t.Errorf("content = %q, want %q", got.Messages[0].Content.String(), "hi")
	}
	if CompletionToChatRequest(nil) != nil {
		t.Error("CompletionToChatRequest(nil) should be nil")
	}
}
