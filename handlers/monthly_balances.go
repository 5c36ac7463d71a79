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

func GetMonthlyAccountBalances(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	query := `
		SELECT id, month_key, account_id, calculated_balance, faktiskt_kontosaldo, bankens_kontosaldo
		FROM monthly_account_balances WHERE user_id = ?`
	args := []interface{}{userID}

	if monthKey := r.URL.Query().Get("monthKey"); monthKey != "" {
		if !models.ValidMonthKey(monthKey) {
			http.Error(w, "invalid monthKey, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		query += " AND month_key = ?"
		args = append(args, monthKey)
	}
	query += " ORDER BY month_key, account_id"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error querying monthly balances: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	balances := []models.MonthlyAccountBalance{}
	for rows.Next() {
		var b models.MonthlyAccountBalance
		err := rows.Scan(&b.ID, &b.MonthKey, &b.AccountID, &b.CalculatedBalance,
			&b.FaktisktKontosaldo, &b.BankensKontosaldo)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b.UserID = userID
		balances = append(balances, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(balances)
}

// SaveMonthlyAccountBalance upserts a balance row. The derived
// calculated_balance is only written here when the row is new; for
// existing rows the budget recompute owns it.
func SaveMonthlyAccountBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var b models.MonthlyAccountBalance
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.ValidMonthKey(b.MonthKey) {
		http.Error(w, "invalid monthKey, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	if b.AccountID == 0 {
		http.Error(w, "accountId is required", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT INTO monthly_account_balances
			(month_key, account_id, calculated_balance, faktiskt_kontosaldo, bankens_kontosaldo, user_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(month_key, account_id, user_id) DO UPDATE SET
			faktiskt_kontosaldo = excluded.faktiskt_kontosaldo,
			bankens_kontosaldo = excluded.bankens_kontosaldo
	`, b.MonthKey, b.AccountID, b.CalculatedBalance, b.FaktisktKontosaldo, b.BankensKontosaldo, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// UpdateFaktisktKontosaldo records the user's real-world balance for
// one account and month without touching the derived figure.
func UpdateFaktisktKontosaldo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	monthKey := vars["monthKey"]
	accountID := vars["accountId"]

	if !models.ValidMonthKey(monthKey) {
		http.Error(w, "invalid monthKey, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	var req struct {
		FaktisktKontosaldo *int64 `json:"faktisktKontosaldo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT INTO monthly_account_balances (month_key, account_id, faktiskt_kontosaldo, user_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(month_key, account_id, user_id) DO UPDATE SET
			faktiskt_kontosaldo = excluded.faktiskt_kontosaldo
	`, monthKey, accountID, req.FaktisktKontosaldo, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
