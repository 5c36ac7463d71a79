package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func GetPlannedTransfers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	query := `
		SELECT id, from_account_id, to_account_id, amount, month, transfer_type, daily_amount, transfer_days
		FROM planned_transfers WHERE user_id = ?`
	args := []interface{}{userID}

	if month := r.URL.Query().Get("month"); month != "" {
		if !models.ValidMonthKey(month) {
			http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		query += " AND month = ?"
		args = append(args, month)
	}
	query += " ORDER BY month, id"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error querying planned transfers: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transfers := []models.PlannedTransfer{}
	for rows.Next() {
		var t models.PlannedTransfer
		var days string
		err := rows.Scan(&t.ID, &t.FromAccountID, &t.ToAccountID, &t.Amount, &t.Month,
			&t.TransferType, &t.DailyAmount, &days)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		t.TransferDays, err = models.DecodeTransferDays(days)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		t.UserID = userID
		transfers = append(transfers, t)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transfers)
}

func AddPlannedTransfer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var t models.PlannedTransfer
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.ValidMonthKey(t.Month) {
		http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	if err := t.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		INSERT INTO planned_transfers
			(from_account_id, to_account_id, amount, month, transfer_type, daily_amount, transfer_days, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.FromAccountID, t.ToAccountID, t.Amount, t.Month, t.TransferType,
		t.DailyAmount, models.EncodeTransferDays(t.TransferDays), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recalculateMonths(userID, t.Month)

	t.ID = int(id)
	t.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func UpdatePlannedTransfer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	// Load the current row, apply the patch over it, validate the
	// merged result. Schedule fields interact too much for blind
	// column updates.
	var current models.PlannedTransfer
	var days string
	err := database.DB.QueryRow(`
		SELECT id, from_account_id, to_account_id, amount, month, transfer_type, daily_amount, transfer_days
		FROM planned_transfers WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&current.ID, &current.FromAccountID, &current.ToAccountID, &current.Amount,
		&current.Month, &current.TransferType, &current.DailyAmount, &days)
	if err == sql.ErrNoRows {
		http.Error(w, "transfer not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	current.TransferDays, err = models.DecodeTransferDays(days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	previousMonth := current.Month

	var req struct {
		FromAccountID *int    `json:"fromAccountId"`
		ToAccountID   *int    `json:"toAccountId"`
		Amount        *int64  `json:"amount"`
		Month         *string `json:"month"`
		TransferType  *string `json:"transferType"`
		DailyAmount   *int64  `json:"dailyAmount"`
		TransferDays  *[]int  `json:"transferDays"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FromAccountID != nil {
		current.FromAccountID = *req.FromAccountID
	}
	if req.ToAccountID != nil {
		current.ToAccountID = *req.ToAccountID
	}
	if req.Amount != nil {
		current.Amount = *req.Amount
	}
	if req.Month != nil {
		current.Month = *req.Month
	}
	if req.TransferType != nil {
		current.TransferType = *req.TransferType
	}
	if req.DailyAmount != nil {
		current.DailyAmount = *req.DailyAmount
	}
	if req.TransferDays != nil {
		current.TransferDays = *req.TransferDays
	}

	if !models.ValidMonthKey(current.Month) {
		http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	if err := current.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE planned_transfers
		SET from_account_id = ?, to_account_id = ?, amount = ?, month = ?, transfer_type = ?, daily_amount = ?, transfer_days = ?
		WHERE id = ? AND user_id = ?
	`, current.FromAccountID, current.ToAccountID, current.Amount, current.Month, current.TransferType,
		current.DailyAmount, models.EncodeTransferDays(current.TransferDays), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recalculateMonths(userID, previousMonth, current.Month)

	w.WriteHeader(http.StatusOK)
}

func DeletePlannedTransfer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var month string
	err := database.DB.QueryRow(
		`SELECT month FROM planned_transfers WHERE id = ? AND user_id = ?`, id, userID).Scan(&month)
	if err == sql.ErrNoRows {
		http.Error(w, "transfer not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := database.DB.Exec("DELETE FROM planned_transfers WHERE id = ? AND user_id = ?", id, userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recalculateMonths(userID, month)

	w.WriteHeader(http.StatusOK)
}
