package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	RemindersLoaded *int   `json:"reminders_loaded,omitempty"`
	LastRefresh     string `json:"last_refresh,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Impact          string `json:"impact,omitempty"`
	Error           string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra exposes notifier and store health for operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		remindersCount := d.MemoryIndex.Count()
		lastRefresh := d.MemoryIndex.GetLastRefresh()
		lastRefreshStr := "never"
		if !lastRefresh.IsZero() {
			lastRefreshStr = lastRefresh.Format("2006-01-02 15:04:05")
		}

		redisStatus := checkRedis(d)

		components := map[string]componentStatus{
			"notifier": {
				OK:              !lastRefresh.IsZero(),
				RemindersLoaded: &remindersCount,
				LastRefresh:     lastRefreshStr,
			},
			"redis": redisStatus,
		}

		response := infraResponse{
			Status:     overallStatus(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func overallStatus(components map[string]componentStatus) string {
	// Redis down means no reads or writes at all.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "critical"
	}

	// Notifier never refreshed means reminders won't fire.
	if notifier, exists := components["notifier"]; exists && !notifier.OK {
		return "degraded"
	}

	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "down",
			Impact: "storage-unavailable",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "down",
			Impact: "storage-unavailable",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "none",
		Error:  "none",
	}
}
