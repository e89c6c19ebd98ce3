package types

// CompletionRequest represents a legacy OpenAI completions API request.
// This endpoint is deprecated but still needed for client compatibility.
type CompletionRequest struct {
	// Required: ID of the model to use
	Model string `json:"model"`

	// Required: Prompt(s) to generate completions for
	Prompt CompletionPrompt `json:"prompt"`

	// Optional: Suffix after the inserted completion
	Suffix string `json:"suffix,omitempty"`

	// Optional: Maximum number of tokens to generate
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Optional: Sampling temperature (0-2, default 1)
	Temperature *float64 `json:"temperature,omitempty"`

	// Optional: Nucleus sampling parameter (0-1, default 1)
	TopP *float64 `json:"top_p,omitempty"`

	// Optional: Number of completions to generate (default 1)
	N *int `json:"n,omitempty"`

	// Optional: Stream back partial progress
	Stream        bool           `json:"stream,omitempty"`
	StreamOptions *StreamOptions `json:"stream_options,omitempty"`

	// Optional: Include log probabilities for the top N tokens
	Logprobs *int `json:"logprobs,omitempty"`

	// Optional: Echo back the prompt with completion
	Echo bool `json:"echo,omitempty"`

	// Optional: Stop sequences (up to 4)
	Stop Stop `json:"stop,omitzero"`

	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`

	// Optional: Modify likelihood of specified tokens
	LogitBias map[string]float64 `json:"logit_bias,omitempty"`

	// Optional: Unique identifier for the end-user
	User string `json:"user,omitempty"`

	// Optional: Seed for deterministic sampling
	Seed *int `json:"seed,omitempty"`
}

// IncludeUsage reports whether the caller asked for a trailing usage chunk.
func (r *CompletionRequest) IncludeUsage() bool {
	return r.StreamOptions != nil && r.StreamOptions.IncludeUsage
}

// CompletionPrompt handles various prompt input formats.
type CompletionPrompt struct {
	Values []string
}

// MarshalJSON implements custom marshaling for CompletionPrompt.
func (p CompletionPrompt) MarshalJSON() ([]byte, error) {
	if len(p.Values) == 0 {
		return marshalString("")
	}
	if len(p.Values) == 1 {
		return marshalString(p.Values[0])
	}
	return marshalStringArray(p.Values)
}

// UnmarshalJSON implements custom unmarshaling for CompletionPrompt.
func (p *CompletionPrompt) UnmarshalJSON(data []byte) error {
	p.Values = nil
	var single string
	if err := unmarshalString(data, &single); err == nil {
		p.Values = []string{single}
		return nil
	}
	return unmarshalStringArray(data, &p.Values)
}

// CompletionResponse represents a legacy completions API response.
type CompletionResponse struct {
	ID                string             `json:"id"`
	Object            string             `json:"object"` // "text_completion"
	Created           int64              `json:"created"`
	Model             string             `json:"model"`
	SystemFingerprint string             `json:"system_fingerprint,omitempty"`
	Choices           []CompletionChoice `json:"choices"`
	Usage             *Usage             `json:"usage,omitempty"`
}

// CompletionChoice represents a single completion choice.
// A nil FinishReason serializes as null.
type CompletionChoice struct {
	Text         string              `json:"text"`
	Index        int                 `json:"index"`
	Logprobs     *CompletionLogprobs `json:"logprobs"`
	FinishReason *string             `json:"finish_reason"`
}

// GetFinishReason returns the finish reason or empty string when null.
func (c *CompletionChoice) GetFinishReason() string {
	if c.FinishReason == nil {
		return ""
	}
	return *c.FinishReason
}

// CompletionLogprobs is the provider-agnostic log probability structure:
// one position per generated token across the parallel slices.
// A nil *CompletionLogprobs means no data; an empty value means data was
// present but carried no tokens.
type CompletionLogprobs struct {
	Tokens        []string             `json:"tokens"`
	TokenLogprobs []float64            `json:"token_logprobs"`
	TopLogprobs   []map[string]float64 `json:"top_logprobs"`
	TextOffset    []int                `json:"text_offset"`
}

// Len returns the number of token positions.
func (l *CompletionLogprobs) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Tokens)
}

// Append adds one token position.
func (l *CompletionLogprobs) Append(token string, logprob float64, top map[string]float64, offset int) {
	if top == nil {
		top = map[string]float64{}
	}
	l.Tokens = append(l.Tokens, token)
	l.TokenLogprobs = append(l.TokenLogprobs, logprob)
	l.TopLogprobs = append(l.TopLogprobs, top)
	l.TextOffset = append(l.TextOffset, offset)
}

// Clone returns a deep copy, preserving nil.
func (l *CompletionLogprobs) Clone() *CompletionLogprobs {
	if l == nil {
		return nil
	}
	out := &CompletionLogprobs{
		Tokens:        append([]string{}, l.Tokens...),
		TokenLogprobs: append([]float64{}, l.TokenLogprobs...),
		TextOffset:    append([]int{}, l.TextOffset...),
		TopLogprobs:   make([]map[string]float64, len(l.TopLogprobs)),
	}
	for i, top := range l.TopLogprobs {
		m := make(map[string]float64, len(top))
		for k, v := range top {
			m[k] = v
		}
		out.TopLogprobs[i] = m
	}
	return out
}

// CompletionStreamChunk represents a streaming completion chunk.
type CompletionStreamChunk struct {
	ID                string                   `json:"id"`
	Object            string                   `json:"object"` // "text_completion"
	Created           int64                    `json:"created"`
	Model             string                   `json:"model"`
	SystemFingerprint string                   `json:"system_fingerprint,omitempty"`
	Choices           []CompletionStreamChoice `json:"choices"`
	Usage             *Usage                   `json:"usage,omitempty"`
}

// CompletionStreamChoice represents a streaming choice.
type CompletionStreamChoice struct {
	Text         string              `json:"text"`
	Index        int                 `json:"index"`
	Logprobs     *CompletionLogprobs `json:"logprobs"`
	FinishReason *string             `json:"finish_reason"`
}
