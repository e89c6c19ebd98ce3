package infra

import (
	"net/http"
	"runtime"
	"time"

	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/llmshim/internal/version"
)

// RootStatus returns JSON status and version information at /.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"name":    "llmshim",
		"version": version.Version,
		"status":  "running",
		"api":     "/v1",
		"usage":   "/api/usage",
		"metrics": "/metrics",
	}, http.StatusOK)
}

// HealthCheck handles GET /api/health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "disabled"

	if h.Storage != nil {
		dbStatus = "connected"
		if _, err := h.Storage.GetUsageStats(storage.StatsFilter{}); err != nil {
			status = "degraded"
			dbStatus = "error: " + err.Error()
		}
	}

	uptime := time.Since(h.StartTime)
	shared.WriteJSON(w, map[string]any{
		"status":             status,
		"database":           dbStatus,
		"version":            version.Version,
		"go_version":         runtime.Version(),
		"uptime_secs":        int64(uptime.Seconds()),
		"logprobs_providers": h.Logprobs.Providers(),
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
