package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mandalnilabja/llmshim/internal/storage/models"
)

// LogRequest stores a request log entry
func (s *Storage) LogRequest(log *models.RequestLog) error {
	if log == nil || log.RequestID == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if log.ID == "" {
		log.ID = newLogID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO request_logs (id, request_id, endpoint, model, provider,
			prompt_tokens, completion_tokens, total_tokens, reasoning_tokens,
			cached_tokens, prompt_estimated, is_streaming, finish_reason,
			status_code, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.RequestID, log.Endpoint, log.Model, log.Provider,
		log.PromptTokens, log.CompletionTokens, log.TotalTokens, log.ReasoningTokens,
		log.CachedTokens, boolToInt(log.PromptEstimated), boolToInt(log.IsStreaming), log.FinishReason,
		log.StatusCode, log.ErrorMessage, log.DurationMs, log.CreatedAt)

	return err
}

// GetRequestLogs retrieves request logs with filtering
func (s *Storage) GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT id, request_id, endpoint, model, provider,
		prompt_tokens, completion_tokens, total_tokens, reasoning_tokens,
		cached_tokens, prompt_estimated, is_streaming, COALESCE(finish_reason, ''),
		status_code, COALESCE(error_message, ''), duration_ms, created_at
		FROM request_logs WHERE 1=1`

	var args []any

	if filter.Endpoint != "" {
		query += " AND endpoint = ?"
		args = append(args, filter.Endpoint)
	}
	if filter.Model != "" {
		query += " AND model = ?"
		args = append(args, filter.Model)
	}
	if filter.Provider != "" {
		query += " AND provider = ?"
		args = append(args, filter.Provider)
	}
	if filter.StatusCode != nil {
		query += " AND status_code = ?"
		args = append(args, *filter.StatusCode)
	}
	if filter.StartDate != nil {
		query += " AND created_at >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND created_at <= ?"
		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.RequestLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func scanLog(rows *sql.Rows) (*models.RequestLog, error) {
	var log models.RequestLog
	var promptEstimated, isStreaming int

	err := rows.Scan(&log.ID, &log.RequestID, &log.Endpoint, &log.Model, &log.Provider,
		&log.PromptTokens, &log.CompletionTokens, &log.TotalTokens, &log.ReasoningTokens,
		&log.CachedTokens, &promptEstimated, &isStreaming, &log.FinishReason,
		&log.StatusCode, &log.ErrorMessage, &log.DurationMs, &log.CreatedAt)
	if err != nil {
		return nil, err
	}

	log.PromptEstimated = promptEstimated == 1
	log.IsStreaming = isStreaming == 1
	return &log, nil
}

// DeleteRequestLogs removes logs older than the specified date
func (s *Storage) DeleteRequestLogs(olderThan string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM request_logs WHERE DATE(created_at) < ?", olderThan)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
