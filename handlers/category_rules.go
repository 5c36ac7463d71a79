package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

const ruleColumns = `id, bank_category, COALESCE(bank_sub_category, ''), huvudkategori_id,
	underkategori_id, COALESCE(transaction_type, '')`

func GetCategoryRules(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(
		`SELECT `+ruleColumns+` FROM category_rules WHERE user_id = ? ORDER BY bank_category, bank_sub_category`, userID)
	if err != nil {
		log.Printf("Error querying category rules: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	rules := []models.CategoryRule{}
	for rows.Next() {
		var cr models.CategoryRule
		err := rows.Scan(&cr.ID, &cr.BankCategory, &cr.BankSubCategory,
			&cr.HuvudkategoriID, &cr.UnderkategoriID, &cr.TransactionType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		cr.UserID = userID
		rules = append(rules, cr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rules)
}

func GetCategoryRule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var cr models.CategoryRule
	err := database.DB.QueryRow(
		`SELECT `+ruleColumns+` FROM category_rules WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&cr.ID, &cr.BankCategory, &cr.BankSubCategory,
			&cr.HuvudkategoriID, &cr.UnderkategoriID, &cr.TransactionType)
	if err == sql.ErrNoRows {
		http.Error(w, "rule not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cr.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cr)
}

func AddCategoryRule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var cr models.CategoryRule
	if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if cr.BankCategory == "" {
		http.Error(w, "bankCategory is required", http.StatusBadRequest)
		return
	}
	if cr.HuvudkategoriID == 0 {
		http.Error(w, "huvudkategoriId is required", http.StatusBadRequest)
		return
	}
	if cr.TransactionType != "" &&
		cr.TransactionType != models.TransactionTypePositive &&
		cr.TransactionType != models.TransactionTypeNegative {
		http.Error(w, "transactionType must be positive or negative", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		INSERT INTO category_rules
			(bank_category, bank_sub_category, huvudkategori_id, underkategori_id, transaction_type, user_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cr.BankCategory, nullIfEmpty(cr.BankSubCategory), cr.HuvudkategoriID,
		cr.UnderkategoriID, nullIfEmpty(cr.TransactionType), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cr.ID = int(id)
	cr.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cr)
}

func UpdateCategoryRule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var req struct {
		BankCategory    *string `json:"bankCategory"`
		BankSubCategory *string `json:"bankSubCategory"`
		HuvudkategoriID *int    `json:"huvudkategoriId"`
		UnderkategoriID *int    `json:"underkategoriId"`
		TransactionType *string `json:"transactionType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set := []string{}
	args := []interface{}{}
	if req.BankCategory != nil {
		set = append(set, "bank_category = ?")
		args = append(args, *req.BankCategory)
	}
	if req.BankSubCategory != nil {
		set = append(set, "bank_sub_category = ?")
		args = append(args, nullIfEmpty(*req.BankSubCategory))
	}
	if req.HuvudkategoriID != nil {
		set = append(set, "huvudkategori_id = ?")
		args = append(args, *req.HuvudkategoriID)
	}
	if req.UnderkategoriID != nil {
		set = append(set, "underkategori_id = ?")
		args = append(args, *req.UnderkategoriID)
	}
	if req.TransactionType != nil {
		set = append(set, "transaction_type = ?")
		args = append(args, nullIfEmpty(*req.TransactionType))
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	args = append(args, id, userID)
	result, err := database.DB.Exec(
		"UPDATE category_rules SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "rule not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteCategoryRule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM category_rules WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "rule not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
