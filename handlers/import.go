package handlers

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"familjebudget/backend/database"
	"familjebudget/backend/importer"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"
	"familjebudget/backend/services"

	"github.com/google/uuid"
)

// 10 MB is plenty for a monthly bank export.
const maxStatementSize = 10 << 20

type importPreviewResponse struct {
	Transactions  []models.Transaction             `json:"transactions"`
	Skipped       int                              `json:"skipped"`
	Uncategorized []services.UncategorizedCategory `json:"uncategorized"`
}

// PreviewImport parses an uploaded bank statement (CSV or XLSX),
// classifies each row against the user's category rules and returns
// the result without writing anything. The frontend shows this preview
// before the user confirms the import.
func PreviewImport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxStatementSize); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	bankID := r.FormValue("bankId")
	if bankID == "" {
		http.Error(w, "bankId is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxStatementSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mapping, err := activeMappingForBank(bankID, userID)
	if err == sql.ErrNoRows {
		http.Error(w, "no active CSV mapping for bank", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	text, err := importer.StatementText(header.Filename, data)
	if err != nil {
		http.Error(w, "could not read statement: "+err.Error(), http.StatusBadRequest)
		return
	}

	parsed, err := importer.Parse(text, mapping)
	if err != nil {
		http.Error(w, "could not parse statement: "+err.Error(), http.StatusBadRequest)
		return
	}

	rules, err := loadCategoryRules(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	transactions := make([]models.Transaction, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		t := models.Transaction{
			ID:              uuid.New().String(),
			Date:            row.Date,
			Description:     row.Description,
			Amount:          row.AmountOre,
			Type:            transactionTypeFor(row.AmountOre),
			BankCategory:    row.BankCategory,
			BankSubCategory: row.BankSubCategory,
			UserID:          userID,
		}
		if rule := services.MatchRule(row.BankCategory, row.BankSubCategory, row.AmountOre, rules); rule != nil {
			huvud := rule.HuvudkategoriID
			t.AppCategoryID = &huvud
			t.AppSubCategoryID = rule.UnderkategoriID
		}
		transactions = append(transactions, t)
	}

	resp := importPreviewResponse{
		Transactions:  transactions,
		Skipped:       parsed.Skipped,
		Uncategorized: services.UncategorizedCategories(transactions, rules),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type importCommitRequest struct {
	AccountID    int                  `json:"accountId"`
	Transactions []models.Transaction `json:"transactions"`
}

// CommitImport inserts previewed transactions in a single database
// transaction and recalculates the balances of every month touched.
func CommitImport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var req importCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AccountID == 0 {
		http.Error(w, "accountId is required", http.StatusBadRequest)
		return
	}
	if len(req.Transactions) == 0 {
		http.Error(w, "transactions is empty", http.StatusBadRequest)
		return
	}
	for _, t := range req.Transactions {
		if t.MonthKeyOf() == "" {
			http.Error(w, "transaction date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	tx, err := database.DB.Begin()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, date, description, amount, type, account_id,
			app_category_id, app_sub_category_id, bank_category, bank_sub_category, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer stmt.Close()

	months := map[string]bool{}
	for _, t := range req.Transactions {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.Type == "" {
			t.Type = transactionTypeFor(t.Amount)
		}
		_, err := stmt.Exec(t.ID, t.Date, t.Description, t.Amount, t.Type, req.AccountID,
			t.AppCategoryID, t.AppSubCategoryID,
			nullIfEmpty(t.BankCategory), nullIfEmpty(t.BankSubCategory), userID)
		if err != nil {
			log.Printf("Error inserting imported transaction: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		months[t.MonthKeyOf()] = true
	}

	if err := tx.Commit(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	monthKeys := make([]string, 0, len(months))
	for m := range months {
		monthKeys = append(monthKeys, m)
	}
	recalculateMonths(userID, monthKeys...)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"imported": len(req.Transactions),
		"months":   monthKeys,
	})
}

func activeMappingForBank(bankID, userID string) (models.BankCsvMapping, error) {
	var m models.BankCsvMapping
	row := database.DB.QueryRow(`
		SELECT `+mappingColumns+` FROM bank_csv_mappings
		WHERE bank_id = ? AND user_id = ? AND is_active = 1`, bankID, userID)
	err := row.Scan(&m.ID, &m.BankID, &m.Name, &m.DateColumn, &m.DescriptionColumn,
		&m.AmountColumn, &m.CategoryColumn, &m.SubCategoryColumn, &m.IsActive)
	if err != nil {
		return models.BankCsvMapping{}, err
	}
	m.UserID = userID
	return m, nil
}

func loadCategoryRules(userID string) ([]models.CategoryRule, error) {
	rows, err := database.DB.Query(
		`SELECT `+ruleColumns+` FROM category_rules WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.CategoryRule{}
	for rows.Next() {
		var cr models.CategoryRule
		err := rows.Scan(&cr.ID, &cr.BankCategory, &cr.BankSubCategory,
			&cr.HuvudkategoriID, &cr.UnderkategoriID, &cr.TransactionType)
		if err != nil {
			return nil, err
		}
		cr.UserID = userID
		rules = append(rules, cr)
	}
	return rules, rows.Err()
}
