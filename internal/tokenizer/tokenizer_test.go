package tokenizer

import (
	"testing"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// newLoadedTokenizer skips the test when tiktoken cannot load its encoding
// files, which it fetches on first use.
func newLoadedTokenizer(t *testing.T) *TiktokenTokenizer {
	t.Helper()
	tok := New()
	if _, err := tok.CountTokens("probe", "gpt-4"); err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	return tok
}

func TestCountTokens(t *testing.T) {
	tok := newLoadedTokenizer(t)

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int // Token counts may vary slightly
		maxCount int
	}{
		{"simple text gpt-4", "Hello, world!", "gpt-4", 3, 5},
		{"simple text gpt-3.5", "Hello, world!", "gpt-3.5-turbo", 3, 5},
		{"routed model name", "Hello, world!", "openai/gpt-4o", 3, 5},
		{"unknown model defaults to cl100k", "Hello, world!", "mistralai/Mistral-7B-Instruct", 3, 5},
		{"empty text", "", "gpt-4", 0, 0},
		{"longer text", "The quick brown fox jumps over the lazy dog.", "gpt-4", 8, 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountTokens(tc.text, tc.model)
			if err != nil {
				t.Fatalf("CountTokens() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountTokens() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestCountTokens_EmptyTextNeedsNoEncoding(t *testing.T) {
	tok := New()
	count, err := tok.CountTokens("", "gpt-4")
	if err != nil || count != 0 {
		t.Errorf("CountTokens(\"\") = %d, %v, want 0, nil", count, err)
	}
	if len(tok.encodings) != 0 {
		t.Errorf("encodings loaded = %d, want 0", len(tok.encodings))
	}
}

func TestEncodingForModel(t *testing.T) {
	tests := []struct {
		model    string
		expected string
	}{
		{"gpt-4", EncodingCL100kBase},
		{"gpt-4-turbo", EncodingCL100kBase},
		{"gpt-3.5-turbo-16k", EncodingCL100kBase},
		{"gpt-4o", EncodingO200kBase},
		{"gpt-4o-mini", EncodingO200kBase},
		{"gpt-4.1-nano", EncodingO200kBase},
		{"o1-preview", EncodingO200kBase},
		{"chatgpt-4o-latest", EncodingO200kBase},
		{"openai/gpt-4o", EncodingO200kBase},
		{"OpenAI/GPT-4O-MINI", EncodingO200kBase},
		{"anthropic/claude-3.5-sonnet", EncodingCL100kBase},
		{"meta-llama/Llama-3.1-8B-Instruct", EncodingCL100kBase},
		{"unknown-model", EncodingCL100kBase},
		{"", EncodingCL100kBase},
	}

	for _, tc := range tests {
		t.Run(tc.model, func(t *testing.T) {
			result := EncodingForModel(tc.model)
			if result != tc.expected {
				t.Errorf("EncodingForModel(%q) = %q, want %q",
					tc.model, result, tc.expected)
			}
		})
	}
}

func TestCountPrompt(t *testing.T) {
	tok := newLoadedTokenizer(t)

	single, err := tok.CountPrompt(types.CompletionPrompt{Values: []string{"Hello, world!"}}, "gpt-4")
	if err != nil {
		t.Fatalf("CountPrompt() error: %v", err)
	}
	double, err := tok.CountPrompt(types.CompletionPrompt{Values: []string{"Hello, world!", "Hello, world!"}}, "gpt-4")
	if err != nil {
		t.Fatalf("CountPrompt() error: %v", err)
	}
	if single == 0 {
		t.Fatal("CountPrompt() = 0, want > 0")
	}
	if double != 2*single {
		t.Errorf("CountPrompt(two prompts) = %d, want %d", double, 2*single)
	}

	empty, err := tok.CountPrompt(types.CompletionPrompt{}, "gpt-4")
	if err != nil || empty != 0 {
		t.Errorf("CountPrompt(empty) = %d, %v, want 0, nil", empty, err)
	}
}

func TestEncodingCaching(t *testing.T) {
	tok := newLoadedTokenizer(t)

	if _, err := tok.CountTokens("hello", "gpt-4"); err != nil {
		t.Fatalf("first CountTokens() error: %v", err)
	}
	if _, err := tok.CountTokens("world", "gpt-3.5-turbo"); err != nil {
		t.Fatalf("second CountTokens() error: %v", err)
	}

	// Both models share cl100k_base
	tok.mu.Lock()
	defer tok.mu.Unlock()
	if len(tok.encodings) != 1 {
		t.Errorf("expected 1 cached encoding, got %d", len(tok.encodings))
	}
}
