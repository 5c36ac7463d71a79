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
	"familjebudget/backend/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const transactionColumns = `id, date, description, amount, type, account_id,
	app_category_id, app_sub_category_id, COALESCE(bank_category, ''), COALESCE(bank_sub_category, '')`

func scanTransaction(rows *sql.Rows, t *models.Transaction) error {
	return rows.Scan(&t.ID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.AccountID,
		&t.AppCategoryID, &t.AppSubCategoryID, &t.BankCategory, &t.BankSubCategory)
}

func GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`
	args := []interface{}{userID}

	if accountID := r.URL.Query().Get("accountId"); accountID != "" {
		query += " AND account_id = ?"
		args = append(args, accountID)
	}
	if monthKey := r.URL.Query().Get("monthKey"); monthKey != "" {
		if !models.ValidMonthKey(monthKey) {
			http.Error(w, "invalid monthKey, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		query += " AND substr(date, 1, 7) = ?"
		args = append(args, monthKey)
	}

	query += " ORDER BY date DESC, id"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error querying transactions: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		t.UserID = userID
		transactions = append(transactions, t)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

func AddTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if t.Date == "" || t.AccountID == 0 {
		http.Error(w, "date and accountId are required", http.StatusBadRequest)
		return
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Type == "" {
		t.Type = transactionTypeFor(t.Amount)
	}

	_, err := database.DB.Exec(`
		INSERT INTO transactions
			(id, date, description, amount, type, account_id, app_category_id, app_sub_category_id, bank_category, bank_sub_category, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Date, t.Description, t.Amount, t.Type, t.AccountID,
		t.AppCategoryID, t.AppSubCategoryID, nullIfEmpty(t.BankCategory), nullIfEmpty(t.BankSubCategory), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recalculateMonths(userID, t.MonthKeyOf())

	t.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var previousMonth string
	err := database.DB.QueryRow(
		`SELECT substr(date, 1, 7) FROM transactions WHERE id = ? AND user_id = ?`, id, userID).Scan(&previousMonth)
	if err == sql.ErrNoRows {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var req struct {
		Date             *string `json:"date"`
		Description      *string `json:"description"`
		Amount           *int64  `json:"amount"`
		Type             *string `json:"type"`
		AccountID        *int    `json:"accountId"`
		AppCategoryID    *int    `json:"appCategoryId"`
		AppSubCategoryID *int    `json:"appSubCategoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set := []string{}
	args := []interface{}{}
	if req.Date != nil {
		set = append(set, "date = ?")
		args = append(args, *req.Date)
	}
	if req.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, *req.Amount)
	}
	if req.Type != nil {
		set = append(set, "type = ?")
		args = append(args, *req.Type)
	}
	if req.AccountID != nil {
		set = append(set, "account_id = ?")
		args = append(args, *req.AccountID)
	}
	if req.AppCategoryID != nil {
		set = append(set, "app_category_id = ?")
		args = append(args, *req.AppCategoryID)
	}
	if req.AppSubCategoryID != nil {
		set = append(set, "app_sub_category_id = ?")
		args = append(args, *req.AppSubCategoryID)
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	args = append(args, id, userID)
	if _, err := database.DB.Exec(
		"UPDATE transactions SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Moving a transaction across months dirties both
	newMonth := previousMonth
	if req.Date != nil && len(*req.Date) >= 7 {
		newMonth = (*req.Date)[:7]
	}
	recalculateMonths(userID, previousMonth, newMonth)

	w.WriteHeader(http.StatusOK)
}

func DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var month string
	err := database.DB.QueryRow(
		`SELECT substr(date, 1, 7) FROM transactions WHERE id = ? AND user_id = ?`, id, userID).Scan(&month)
	if err == sql.ErrNoRows {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := database.DB.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recalculateMonths(userID, month)

	w.WriteHeader(http.StatusOK)
}

func transactionTypeFor(amount int64) string {
	if amount < 0 {
		return models.TransactionTypeNegative
	}
	return models.TransactionTypePositive
}

// recalculateMonths refreshes calculated balances after a mutation.
// Failures are logged, not surfaced: the mutation itself already
// succeeded and the next recompute heals the derived rows.
func recalculateMonths(userID string, monthKeys ...string) {
	done := make(map[string]bool)
	for _, monthKey := range monthKeys {
		if monthKey == "" || done[monthKey] {
			continue
		}
		done[monthKey] = true
		if err := services.RecalculateMonth(database.DB, userID, monthKey); err != nil {
			log.Printf("Error recalculating balances for %s: %v", monthKey, err)
		}
	}
}
