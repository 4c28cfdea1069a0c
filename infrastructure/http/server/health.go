package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"soapstone/observability"
)

// HealthHandler serves the process self stats used by liveness probes.
func HealthHandler(reporter *observability.HealthReporter, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reporter.Snapshot()); err != nil {
			log.Error("Failed to write health snapshot", "error", err)
		}
	}
}
