package handlers

import (
	"net/http"

	"connections/internal/database"
	"connections/internal/realtime"
)

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, MessageResponse{Message: "Connections API"}, http.StatusOK)
}

// HealthHandler reports server, database and websocket hub status.
func HealthHandler(db *database.DB, hub *realtime.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		dbStatus := "ok"
		code := http.StatusOK

		if err := db.HealthCheck(); err != nil {
			status = "degraded"
			dbStatus = err.Error()
			code = http.StatusServiceUnavailable
		}

		writeSuccess(w, map[string]interface{}{
			"status":     status,
			"database":   dbStatus,
			"ws_clients": hub.ClientCount(),
		}, code)
	}
}
