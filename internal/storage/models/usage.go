package models

import "time"

// DailyUsage represents aggregated usage stats for a day
type DailyUsage struct {
	Date             string `json:"date"` // YYYY-MM-DD
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	RequestCount     int    `json:"request_count"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	ErrorCount       int    `json:"error_count"`
}

// ModelStats represents usage statistics for a specific model
type ModelStats struct {
	Model            string `json:"model"`
	RequestCount     int    `json:"request_count"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	ErrorCount       int    `json:"error_count"`
}

// UsageStats represents aggregated usage statistics
type UsageStats struct {
	TotalRequests         int                    `json:"total_requests"`
	TotalTokens           int                    `json:"total_tokens"`
	TotalPromptTokens     int                    `json:"prompt_tokens"`
	TotalCompletionTokens int                    `json:"completion_tokens"`
	ErrorCount            int                    `json:"error_count"`
	ModelBreakdown        map[string]*ModelStats `json:"models,omitempty"`
}

// StatsFilter contains parameters for filtering usage statistics
type StatsFilter struct {
	Provider  string
	Model     string
	StartDate *time.Time
	EndDate   *time.Time
}

// CacheKey identifies the filter in result caches.
func (f StatsFilter) CacheKey() string {
	key := f.Provider + "|" + f.Model + "|"
	if f.StartDate != nil {
		key += f.StartDate.Format("2006-01-02")
	}
	key += "|"
	if f.EndDate != nil {
		key += f.EndDate.Format("2006-01-02")
	}
	return key
}
