package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func GetBanks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`SELECT id, name FROM banks WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		log.Printf("Error querying banks: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	banks := []models.Bank{}
	for rows.Next() {
		var b models.Bank
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b.UserID = userID
		banks = append(banks, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(banks)
}

func AddBank(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var b models.Bank
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`INSERT INTO banks (name, user_id) VALUES (?, ?)`, b.Name, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	b.ID = int(id)
	b.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func DeleteBank(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	// Mappings cascade with the bank
	result, err := database.DB.Exec("DELETE FROM banks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "bank not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}
