package models

import "time"

// Endpoint names recorded with each request.
const (
	EndpointChat        = "chat.completions"
	EndpointCompletions = "completions"
)

// RequestLog represents a logged API request with its normalized usage.
type RequestLog struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id"`
	Endpoint         string    `json:"endpoint"`
	Model            string    `json:"model"`
	Provider         string    `json:"provider"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	ReasoningTokens  int       `json:"reasoning_tokens,omitempty"`
	CachedTokens     int       `json:"cached_tokens,omitempty"`
	PromptEstimated  bool      `json:"prompt_estimated,omitempty"` // Prompt tokens counted locally
	IsStreaming      bool      `json:"is_streaming"`
	FinishReason     string    `json:"finish_reason,omitempty"`
	StatusCode       int       `json:"status_code"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	DurationMs       int64     `json:"duration_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// LogFilter contains parameters for filtering request logs
type LogFilter struct {
	Endpoint   string
	Model      string
	Provider   string
	StatusCode *int
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
