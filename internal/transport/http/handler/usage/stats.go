package usage

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler/shared"
)

// GetUsageStats handles GET /api/usage.
func (h *Handlers) GetUsageStats(w http.ResponseWriter, r *http.Request) {
	filter := parseStatsFilter(r)

	stats, hit, err := h.cachedStats(filter)
	if err != nil {
		shared.WriteJSONError(w, "Failed to get usage stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	shared.WriteJSON(w, stats, http.StatusOK)
}

// GetDailyUsage handles GET /api/usage/daily.
func (h *Handlers) GetDailyUsage(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	// Default to last 30 days if not specified
	if startDate == "" {
		startDate = time.Now().UTC().AddDate(0, 0, -30).Format(shared.DateLayout)
	}
	if endDate == "" {
		endDate = time.Now().UTC().Format(shared.DateLayout)
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(shared.DateLayout, d); err != nil {
			shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	usage, err := h.Storage.GetDailyUsage(startDate, endDate)
	if err != nil {
		shared.WriteJSONError(w, "Failed to get daily usage: "+err.Error(), http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, map[string]any{
		"daily_usage": usage,
		"start_date":  startDate,
		"end_date":    endDate,
	}, http.StatusOK)
}

// parseStatsFilter creates a StatsFilter from query parameters.
func parseStatsFilter(r *http.Request) storage.StatsFilter {
	return storage.StatsFilter{
		Provider:  r.URL.Query().Get("provider"),
		Model:     r.URL.Query().Get("model"),
		StartDate: shared.QueryDate(r, "start_date"),
		EndDate:   shared.QueryDate(r, "end_date"),
	}
}
