// Package tokenizer estimates prompt token counts for requests whose
// upstream reply carried no prompt usage. Estimates are recorded in the
// request log only; client-facing usage is never filled from them.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// Tokenizer counts tokens for chat and legacy completion requests.
type Tokenizer interface {
	// CountTokens counts tokens in a text string for a given model.
	CountTokens(text string, model string) (int, error)

	// CountMessages counts tokens for a slice of messages.
	CountMessages(messages []types.Message, model string) (int, error)

	// CountRequest counts total prompt tokens for a full request.
	CountRequest(req *types.ChatCompletionRequest) (int, error)

	// CountPrompt counts tokens for legacy completion prompts.
	CountPrompt(prompt types.CompletionPrompt, model string) (int, error)
}

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base"
	EncodingO200kBase  = "o200k_base"
)

// encodingPrefixes maps model-name prefixes to encodings. The first match
// wins, so a prefix must precede any shorter prefix it extends.
var encodingPrefixes = [...]struct {
	prefix, encoding string
}{
	{"gpt-4.1", EncodingO200kBase},
	{"gpt-4o", EncodingO200kBase},
	{"gpt-4", EncodingCL100kBase},
	{"gpt-3.5", EncodingCL100kBase},
	{"gpt-5", EncodingO200kBase},
	{"chatgpt", EncodingO200kBase},
	{"o1", EncodingO200kBase},
	{"o3", EncodingO200kBase},
	{"o4", EncodingO200kBase},
	{"text-embedding", EncodingCL100kBase},
}

// EncodingForModel picks the tiktoken encoding for model. Routed names such
// as "openai/gpt-4o" match on the last path segment; models from other
// vendors fall back to cl100k_base, which is only an approximation for them.
func EncodingForModel(model string) string {
	name := strings.ToLower(model)
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	for _, e := range encodingPrefixes {
		if strings.HasPrefix(name, e.prefix) {
			return e.encoding
		}
	}
	return EncodingCL100kBase
}

// TiktokenTokenizer implements Tokenizer with tiktoken-go. Encodings are
// loaded on first use and shared across models.
type TiktokenTokenizer struct {
	mu        sync.Mutex
	encodings map[string]*tiktoken.Tiktoken
}

// New creates a tokenizer with an empty encoding cache.
func New() *TiktokenTokenizer {
	return &TiktokenTokenizer{encodings: make(map[string]*tiktoken.Tiktoken)}
}

func (t *TiktokenTokenizer) encoding(model string) (*tiktoken.Tiktoken, error) {
	name := EncodingForModel(model)

	t.mu.Lock()
	defer t.mu.Unlock()
	if enc, ok := t.encodings[name]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", name, err)
	}
	t.encodings[name] = enc
	return enc, nil
}

// CountTokens counts tokens in a text string for a given model.
func (t *TiktokenTokenizer) CountTokens(text string, model string) (int, error) {
	if text == "" {
		return 0, nil
	}
	enc, err := t.encoding(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// CountPrompt sums the tokens of each legacy prompt string.
func (t *TiktokenTokenizer) CountPrompt(prompt types.CompletionPrompt, model string) (int, error) {
	return t.sum(model, prompt.Values...)
}
