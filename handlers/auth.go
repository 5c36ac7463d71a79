package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"
	"familjebudget/backend/services"
)

// GetAuthUser upserts the authenticated user into the users table and
// returns the stored record. The frontend calls this once after login.
func GetAuthUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	_, err := database.DB.Exec(`
		INSERT INTO users (id, email, name)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = CASE WHEN excluded.email != '' THEN excluded.email ELSE email END,
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE name END`,
		userID, req.Email, req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var user models.User
	err = database.DB.QueryRow(`SELECT id, email, name FROM users WHERE id = ?`, userID).
		Scan(&user.ID, &user.Email, &user.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// DatabaseStatus reports whether the user has configured an external
// Postgres database and whether it is currently reachable.
func DatabaseStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	status := struct {
		Configured bool `json:"configured"`
		Reachable  bool `json:"reachable"`
	}{}

	connString, err := services.GetSecret(userID, services.SecretDatabaseURL)
	if err != nil && err != sql.ErrNoRows {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err == nil && connString != "" {
		status.Configured = true
		status.Reachable = database.PingPostgres(connString) == nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// ConfigureDatabase stores an encrypted Postgres connection string for
// the user after verifying it looks like a postgres URL.
func ConfigureDatabase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var req struct {
		DatabaseURL string `json:"databaseUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(req.DatabaseURL, "postgres://") && !strings.HasPrefix(req.DatabaseURL, "postgresql://") {
		http.Error(w, "databaseUrl must be a postgres:// connection string", http.StatusBadRequest)
		return
	}

	if err := services.StoreSecret(userID, services.SecretDatabaseURL, req.DatabaseURL); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "stored"})
}
