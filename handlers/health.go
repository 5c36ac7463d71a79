package handlers

import (
	"encoding/json"
	"net/http"

	"familjebudget/backend/database"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if err := database.DB.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
