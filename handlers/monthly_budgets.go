package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"
)

func GetMonthlyBudgets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	query := `SELECT id, month_key, lon, barnbidrag, ovrig_inkomst FROM monthly_budgets WHERE user_id = ?`
	args := []interface{}{userID}

	if monthKey := r.URL.Query().Get("monthKey"); monthKey != "" {
		if !models.ValidMonthKey(monthKey) {
			http.Error(w, "invalid monthKey, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		query += " AND month_key = ?"
		args = append(args, monthKey)
	}
	query += " ORDER BY month_key"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error querying monthly budgets: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	budgets := []models.MonthlyBudget{}
	for rows.Next() {
		var b models.MonthlyBudget
		if err := rows.Scan(&b.ID, &b.MonthKey, &b.Lon, &b.Barnbidrag, &b.OvrigInkomst); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b.UserID = userID
		budgets = append(budgets, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(budgets)
}

// SaveMonthlyBudget upserts the single budget row per (user, month).
func SaveMonthlyBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var b models.MonthlyBudget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.ValidMonthKey(b.MonthKey) {
		http.Error(w, "invalid monthKey, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT INTO monthly_budgets (month_key, lon, barnbidrag, ovrig_inkomst, user_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(month_key, user_id) DO UPDATE SET
			lon = excluded.lon,
			barnbidrag = excluded.barnbidrag,
			ovrig_inkomst = excluded.ovrig_inkomst
	`, b.MonthKey, b.Lon, b.Barnbidrag, b.OvrigInkomst, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := database.DB.QueryRow(
		`SELECT id FROM monthly_budgets WHERE month_key = ? AND user_id = ?`, b.MonthKey, userID).Scan(&b.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	b.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}
