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

func GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, name, COALESCE(category, ''), account_type_id FROM accounts
		WHERE user_id = ? ORDER BY name
	`, userID)
	if err != nil {
		log.Printf("Error querying accounts: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Category, &a.AccountTypeID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		a.UserID = userID
		accounts = append(accounts, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

func AddAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var a models.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if a.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		INSERT INTO accounts (name, category, account_type_id, user_id)
		VALUES (?, ?, ?, ?)
	`, a.Name, a.Category, a.AccountTypeID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			http.Error(w, "an account with this name already exists", http.StatusConflict)
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

	a.ID = int(id)
	a.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

func UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var req struct {
		Name          *string `json:"name"`
		Category      *string `json:"category"`
		AccountTypeID *int    `json:"accountTypeId"`
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
	if req.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *req.Category)
	}
	if req.AccountTypeID != nil {
		set = append(set, "account_type_id = ?")
		args = append(args, *req.AccountTypeID)
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	args = append(args, id, userID)
	result, err := database.DB.Exec(
		"UPDATE accounts SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		if isUniqueViolation(err) {
			http.Error(w, "an account with this name already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM accounts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}
