package sqlite

import "github.com/mandalnilabja/llmshim/internal/storage/models"

// UpdateDailyUsage upserts daily usage data
func (s *Storage) UpdateDailyUsage(usage *models.DailyUsage) error {
	if usage == nil || usage.Date == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO usage_daily (date, provider, model, request_count,
			prompt_tokens, completion_tokens, total_tokens, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, provider, model) DO UPDATE SET
			request_count = request_count + excluded.request_count,
			prompt_tokens = prompt_tokens + excluded.prompt_tokens,
			completion_tokens = completion_tokens + excluded.completion_tokens,
			total_tokens = total_tokens + excluded.total_tokens,
			error_count = error_count + excluded.error_count
	`, usage.Date, usage.Provider, usage.Model, usage.RequestCount,
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, usage.ErrorCount)

	return err
}
