package migrations

import (
	"database/sql"
	"fmt"
)

// AddBankensKontosaldo adds the bank-reported balance column to the
// monthly reconciliation table. Optional third figure next to the
// calculated and user-entered balances.
func AddBankensKontosaldo(db *sql.DB) error {
	exists, err := columnExists(db, "monthly_account_balances", "bankens_kontosaldo")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(`ALTER TABLE monthly_account_balances ADD COLUMN bankens_kontosaldo INTEGER`)
	if err != nil {
		return fmt.Errorf("failed to add bankens_kontosaldo column: %w", err)
	}
	return nil
}

// AddMappingActiveIndex backs the one-active-mapping-per-bank rule
// with a partial unique index.
func AddMappingActiveIndex(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bank_csv_mappings_active
		ON bank_csv_mappings(bank_id) WHERE is_active = 1
	`)
	if err != nil {
		return fmt.Errorf("failed to create active mapping index: %w", err)
	}
	return nil
}

// columnExists checks the sqlite table_info pragma for a column.
func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
