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

const mappingColumns = `id, bank_id, COALESCE(name, ''), date_column, description_column, amount_column,
	COALESCE(category_column, ''), COALESCE(subcategory_column, ''), is_active`

func scanMapping(rows *sql.Rows, m *models.BankCsvMapping) error {
	return rows.Scan(&m.ID, &m.BankID, &m.Name, &m.DateColumn, &m.DescriptionColumn,
		&m.AmountColumn, &m.CategoryColumn, &m.SubCategoryColumn, &m.IsActive)
}

func GetBankCsvMappings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(
		`SELECT `+mappingColumns+` FROM bank_csv_mappings WHERE user_id = ? ORDER BY bank_id, id`, userID)
	if err != nil {
		log.Printf("Error querying csv mappings: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	mappings := []models.BankCsvMapping{}
	for rows.Next() {
		var m models.BankCsvMapping
		if err := scanMapping(rows, &m); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		m.UserID = userID
		mappings = append(mappings, m)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mappings)
}

func GetBankCsvMappingsByBank(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	bankID := mux.Vars(r)["bankId"]

	rows, err := database.DB.Query(
		`SELECT `+mappingColumns+` FROM bank_csv_mappings WHERE user_id = ? AND bank_id = ? ORDER BY id`,
		userID, bankID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	mappings := []models.BankCsvMapping{}
	for rows.Next() {
		var m models.BankCsvMapping
		if err := scanMapping(rows, &m); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		m.UserID = userID
		mappings = append(mappings, m)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mappings)
}

func AddBankCsvMapping(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var m models.BankCsvMapping
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if m.BankID == 0 || m.DateColumn == "" || m.DescriptionColumn == "" || m.AmountColumn == "" {
		http.Error(w, "bankId, dateColumn, descriptionColumn and amountColumn are required", http.StatusBadRequest)
		return
	}

	tx, err := database.DB.Begin()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	// Only one active mapping per bank
	if m.IsActive {
		if _, err := tx.Exec(
			`UPDATE bank_csv_mappings SET is_active = 0 WHERE bank_id = ? AND user_id = ?`,
			m.BankID, userID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	result, err := tx.Exec(`
		INSERT INTO bank_csv_mappings
			(bank_id, name, date_column, description_column, amount_column, category_column, subcategory_column, is_active, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.BankID, m.Name, m.DateColumn, m.DescriptionColumn, m.AmountColumn,
		m.CategoryColumn, m.SubCategoryColumn, m.IsActive, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	m.ID = int(id)
	m.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func UpdateBankCsvMapping(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var req struct {
		Name              *string `json:"name"`
		DateColumn        *string `json:"dateColumn"`
		DescriptionColumn *string `json:"descriptionColumn"`
		AmountColumn      *string `json:"amountColumn"`
		CategoryColumn    *string `json:"categoryColumn"`
		SubCategoryColumn *string `json:"subCategoryColumn"`
		IsActive          *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := database.DB.Begin()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	var bankID int
	err = tx.QueryRow(`SELECT bank_id FROM bank_csv_mappings WHERE id = ? AND user_id = ?`, id, userID).Scan(&bankID)
	if err == sql.ErrNoRows {
		http.Error(w, "mapping not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Activating this mapping deactivates the bank's others first, so
	// the partial unique index never sees two active rows.
	if req.IsActive != nil && *req.IsActive {
		if _, err := tx.Exec(
			`UPDATE bank_csv_mappings SET is_active = 0 WHERE bank_id = ? AND user_id = ? AND id != ?`,
			bankID, userID, id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	set := []string{}
	args := []interface{}{}
	if req.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *req.Name)
	}
	if req.DateColumn != nil {
		set = append(set, "date_column = ?")
		args = append(args, *req.DateColumn)
	}
	if req.DescriptionColumn != nil {
		set = append(set, "description_column = ?")
		args = append(args, *req.DescriptionColumn)
	}
	if req.AmountColumn != nil {
		set = append(set, "amount_column = ?")
		args = append(args, *req.AmountColumn)
	}
	if req.CategoryColumn != nil {
		set = append(set, "category_column = ?")
		args = append(args, *req.CategoryColumn)
	}
	if req.SubCategoryColumn != nil {
		set = append(set, "subcategory_column = ?")
		args = append(args, *req.SubCategoryColumn)
	}
	if req.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	args = append(args, id, userID)
	if _, err := tx.Exec(
		"UPDATE bank_csv_mappings SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteBankCsvMapping(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM bank_csv_mappings WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "mapping not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}
