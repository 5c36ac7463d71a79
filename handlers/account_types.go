package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func GetAccountTypes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, name, COALESCE(description, '') FROM account_types
		WHERE user_id = ? ORDER BY name
	`, userID)
	if err != nil {
		log.Printf("Error querying account types: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	accountTypes := []models.AccountType{}
	for rows.Next() {
		var at models.AccountType
		if err := rows.Scan(&at.ID, &at.Name, &at.Description); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		at.UserID = userID
		accountTypes = append(accountTypes, at)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accountTypes)
}

func AddAccountType(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var at models.AccountType
	if err := json.NewDecoder(r.Body).Decode(&at); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if at.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		INSERT INTO account_types (name, description, user_id)
		VALUES (?, ?, ?)
	`, at.Name, at.Description, userID)
	if err != nil {
		if isUniqueViolation(err) {
			http.Error(w, "an account type with this name already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	at.ID = int(id)
	at.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(at)
}

func UpdateAccountType(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set := []string{}
	args := []interface{}{}
	if req.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *req.Description)
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	args = append(args, id, userID)
	result, err := database.DB.Exec(
		"UPDATE account_types SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		if isUniqueViolation(err) {
			http.Error(w, "an account type with this name already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "account type not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteAccountType(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM account_types WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "account type not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// isUniqueViolation matches sqlite's unique constraint error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
