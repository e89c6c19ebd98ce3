package storage

import (
	"fmt"
	"time"

	"github.com/mandalnilabja/llmshim/internal/storage/models"
)

// Record stores a request log and folds it into the daily usage rollup.
func Record(s Storage, log *models.RequestLog) error {
	if s == nil || log == nil {
		return ErrInvalidInput
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	if err := s.LogRequest(log); err != nil {
		return fmt.Errorf("log request: %w", err)
	}

	daily := &models.DailyUsage{
		Date:             log.CreatedAt.UTC().Format("2006-01-02"),
		Provider:         log.Provider,
		Model:            log.Model,
		RequestCount:     1,
		PromptTokens:     log.PromptTokens,
		CompletionTokens: log.CompletionTokens,
		TotalTokens:      log.TotalTokens,
	}
	if log.StatusCode >= 400 || log.ErrorMessage != "" {
		daily.ErrorCount = 1
	}

	if err := s.UpdateDailyUsage(daily); err != nil {
		return fmt.Errorf("update daily usage: %w", err)
	}
	return nil
}
