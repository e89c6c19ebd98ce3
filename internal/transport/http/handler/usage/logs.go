package usage

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler/shared"
)

const defaultLogLimit = 50

// GetRequestLogs handles GET /api/logs.
func (h *Handlers) GetRequestLogs(w http.ResponseWriter, r *http.Request) {
	filter := parseLogFilter(r)

	logs, err := h.Storage.GetRequestLogs(filter)
	if err != nil {
		shared.WriteJSONError(w, "Failed to get request logs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, map[string]any{
		"logs":   logs,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}, http.StatusOK)
}

// DeleteRequestLogs handles DELETE /api/logs.
func (h *Handlers) DeleteRequestLogs(w http.ResponseWriter, r *http.Request) {
	beforeDate := r.URL.Query().Get("before_date")
	if beforeDate == "" {
		shared.WriteJSONError(w, "before_date query parameter is required (format: YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(shared.DateLayout, beforeDate); err != nil {
		shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	deleted, err := h.Storage.DeleteRequestLogs(beforeDate)
	if err != nil {
		shared.WriteJSONError(w, "Failed to delete logs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Cached rollups may include deleted rows
	if h.Cache != nil {
		h.Cache.Clear()
	}

	shared.WriteJSON(w, map[string]any{
		"deleted_count": deleted,
		"before_date":   beforeDate,
	}, http.StatusOK)
}

// parseLogFilter creates a LogFilter from query parameters.
func parseLogFilter(r *http.Request) storage.LogFilter {
	q := r.URL.Query()
	filter := storage.LogFilter{
		Endpoint:  q.Get("endpoint"),
		Model:     q.Get("model"),
		Provider:  q.Get("provider"),
		StartDate: shared.QueryDate(r, "start_date"),
		EndDate:   shared.QueryDate(r, "end_date"),
		Limit:     shared.QueryInt(r, "limit", defaultLogLimit, 1),
		Offset:    shared.QueryInt(r, "offset", 0, 0),
	}
	if v := q.Get("status_code"); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			filter.StatusCode = &code
		}
	}
	return filter
}
