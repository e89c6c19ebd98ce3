package types

// ChatCompletionResponse represents a non-streaming chat completion response.
type ChatCompletionResponse struct {
	ID                string   `json:"id"`
	Object            string   `json:"object"` // "chat.completion"
	Created           int64    `json:"created"`
	Model             string   `json:"model"`
	Choices           []Choice `json:"choices"`
	Usage             *Usage   `json:"usage,omitempty"`
	SystemFingerprint string   `json:"system_fingerprint,omitempty"`
	ServiceTier       string   `json:"service_tier,omitempty"`

	// Hidden carries provider-side metadata that is never serialized to
	// clients, such as the raw upstream payload.
	Hidden HiddenParams `json:"-"`
}

// Object constants
const (
	ObjectChatCompletion      = "chat.completion"
	ObjectChatCompletionChunk = "chat.completion.chunk"
	ObjectTextCompletion      = "text_completion"
)

// HiddenParams is an opaque per-response metadata bag filled by provider
// adapters.
type HiddenParams map[string]any

// Hidden parameter keys.
const (
	// HiddenOriginalResponse holds the raw upstream body (json.RawMessage).
	HiddenOriginalResponse = "original_response"
	// HiddenProvider holds the provider identifier that produced the response.
	HiddenProvider = "custom_llm_provider"
	// HiddenAPIBase holds the upstream URL the request was sent to.
	HiddenAPIBase = "api_base"
)

// Get returns the value stored under key, or nil.
func (h HiddenParams) Get(key string) any {
	if h == nil {
		return nil
	}
	return h[key]
}

// Choice represents a single completion choice.
type Choice struct {
	Index        int             `json:"index"`
	Message      Message         `json:"message"`
	FinishReason string          `json:"finish_reason,omitempty"`
	Logprobs     *ChoiceLogprobs `json:"logprobs,omitempty"`
}

// FinishReason constants
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonToolCalls     = "tool_calls"
	FinishReasonContentFilter = "content_filter"
)

// ChoiceLogprobs contains log probability information for a chat choice.
type ChoiceLogprobs struct {
	Content []TokenLogprob `json:"content,omitempty"`
}

// TokenLogprob represents log probability for a single token.
type TokenLogprob struct {
	Token       string            `json:"token"`
	Logprob     float64           `json:"logprob"`
	Bytes       []int             `json:"bytes,omitempty"`
	TopLogprobs []TopLogprobEntry `json:"top_logprobs,omitempty"`
}

// TopLogprobEntry represents a top token and its probability.
type TopLogprobEntry struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
	Bytes   []int   `json:"bytes,omitempty"`
}
