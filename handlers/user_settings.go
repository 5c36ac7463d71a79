package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func GetUserSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`SELECT setting_key, setting_value FROM user_settings WHERE user_id = ?`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	settings := []models.UserSetting{}
	for rows.Next() {
		var s models.UserSetting
		if err := rows.Scan(&s.SettingKey, &s.SettingValue); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.UserID = userID
		settings = append(settings, s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func GetUserSetting(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	key := mux.Vars(r)["key"]

	var s models.UserSetting
	err := database.DB.QueryRow(
		`SELECT setting_key, setting_value FROM user_settings WHERE user_id = ? AND setting_key = ?`,
		userID, key).Scan(&s.SettingKey, &s.SettingValue)
	if err == sql.ErrNoRows {
		http.Error(w, "setting not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func PutUserSetting(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	key := mux.Vars(r)["key"]

	var req struct {
		SettingValue string `json:"settingValue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT INTO user_settings (user_id, setting_key, setting_value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, setting_key) DO UPDATE SET setting_value = excluded.setting_value`,
		userID, key, req.SettingValue)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.UserSetting{UserID: userID, SettingKey: key, SettingValue: req.SettingValue})
}

func DeleteUserSetting(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	key := mux.Vars(r)["key"]

	result, err := database.DB.Exec(`DELETE FROM user_settings WHERE user_id = ? AND setting_key = ?`, userID, key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "setting not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}
