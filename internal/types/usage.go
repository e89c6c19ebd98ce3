package types

// Usage represents token usage statistics.
// Counts a provider did not report stay at zero; they are never inferred.
type Usage struct {
	PromptTokens            int                     `json:"prompt_tokens"`
	CompletionTokens        int                     `json:"completion_tokens"`
	TotalTokens             int                     `json:"total_tokens"`
	CompletionTokensDetails *CompletionTokenDetails `json:"completion_tokens_details,omitempty"`
	PromptTokensDetails     *PromptTokenDetails     `json:"prompt_tokens_details,omitempty"`
}

// CompletionTokenDetails provides breakdown of completion tokens.
type CompletionTokenDetails struct {
	ReasoningTokens          int `json:"reasoning_tokens,omitempty"`
	AcceptedPredictionTokens int `json:"accepted_prediction_tokens,omitempty"`
	RejectedPredictionTokens int `json:"rejected_prediction_tokens,omitempty"`
	AudioTokens              int `json:"audio_tokens,omitempty"`
}

// PromptTokenDetails provides breakdown of prompt tokens.
type PromptTokenDetails struct {
	CachedTokens int `json:"cached_tokens,omitempty"`
	AudioTokens  int `json:"audio_tokens,omitempty"`
}

// Add returns the field-wise sum of u and other.
// TotalTokens is the sum of both totals rather than prompt+completion, so
// totals-only usage from legacy providers survives aggregation.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:            u.PromptTokens + other.PromptTokens,
		CompletionTokens:        u.CompletionTokens + other.CompletionTokens,
		TotalTokens:             u.TotalTokens + other.TotalTokens,
		CompletionTokensDetails: u.CompletionTokensDetails.add(other.CompletionTokensDetails),
		PromptTokensDetails:     u.PromptTokensDetails.add(other.PromptTokensDetails),
	}
}

// CombineUsage adds two optional usage values. It returns nil only when both
// are nil; the result never shares detail pointers with its inputs.
func CombineUsage(a, b *Usage) *Usage {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		c := b.Clone()
		return &c
	case b == nil:
		c := a.Clone()
		return &c
	}
	sum := a.Add(*b)
	return &sum
}

// Clone returns a deep copy of u.
func (u Usage) Clone() Usage {
	out := u
	if u.CompletionTokensDetails != nil {
		d := *u.CompletionTokensDetails
		out.CompletionTokensDetails = &d
	}
	if u.PromptTokensDetails != nil {
		d := *u.PromptTokensDetails
		out.PromptTokensDetails = &d
	}
	return out
}

// Normalized returns a copy with the default-filling rule applied: unknown
// prompt/completion counts remain zero, and a missing total is filled in
// from prompt+completion when those are known.
func (u Usage) Normalized() Usage {
	out := u.Clone()
	if out.TotalTokens == 0 {
		out.TotalTokens = out.PromptTokens + out.CompletionTokens
	}
	return out
}

// Equal reports structural equality. A nil breakdown differs from an
// all-zero one.
func (u Usage) Equal(other Usage) bool {
	if u.PromptTokens != other.PromptTokens ||
		u.CompletionTokens != other.CompletionTokens ||
		u.TotalTokens != other.TotalTokens {
		return false
	}
	if (u.CompletionTokensDetails == nil) != (other.CompletionTokensDetails == nil) {
		return false
	}
	if u.CompletionTokensDetails != nil && *u.CompletionTokensDetails != *other.CompletionTokensDetails {
		return false
	}
	if (u.PromptTokensDetails == nil) != (other.PromptTokensDetails == nil) {
		return false
	}
	return u.PromptTokensDetails == nil || *u.PromptTokensDetails == *other.PromptTokensDetails
}

func (d *CompletionTokenDetails) add(other *CompletionTokenDetails) *CompletionTokenDetails {
	if d == nil && other == nil {
		return nil
	}
	var a, b CompletionTokenDetails
	if d != nil {
		a = *d
	}
	if other != nil {
		b = *other
	}
	return &CompletionTokenDetails{
		ReasoningTokens:          a.ReasoningTokens + b.ReasoningTokens,
		AcceptedPredictionTokens: a.AcceptedPredictionTokens + b.AcceptedPredictionTokens,
		RejectedPredictionTokens: a.RejectedPredictionTokens + b.RejectedPredictionTokens,
		AudioTokens:              a.AudioTokens + b.AudioTokens,
	}
}

func (d *PromptTokenDetails) add(other *PromptTokenDetails) *PromptTokenDetails {
	if d == nil && other == nil {
		return nil
	}
	var a, b PromptTokenDetails
	if d != nil {
		a = *d
	}
	if other != nil {
		b = *other
	}
	return &PromptTokenDetails{
		CachedTokens: a.CachedTokens + b.CachedTokens,
		AudioTokens:  a.AudioTokens + b.AudioTokens,
	}
}
