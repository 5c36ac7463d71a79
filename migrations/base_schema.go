package migrations

import (
	"database/sql"
	"fmt"
)

// CreateBaseSchema creates all the base tables needed for the application
func CreateBaseSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT,
			name TEXT
		);

		CREATE TABLE IF NOT EXISTS account_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			user_id TEXT NOT NULL REFERENCES users(id),
			UNIQUE(name, user_id)
		);

		CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT,
			account_type_id INTEGER REFERENCES account_types(id),
			user_id TEXT NOT NULL REFERENCES users(id),
			UNIQUE(name, user_id)
		);

		CREATE TABLE IF NOT EXISTS banks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS bank_csv_mappings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bank_id INTEGER NOT NULL REFERENCES banks(id) ON DELETE CASCADE,
			name TEXT,
			date_column TEXT NOT NULL,
			description_column TEXT NOT NULL,
			amount_column TEXT NOT NULL,
			category_column TEXT,
			subcategory_column TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			parent_id INTEGER REFERENCES categories(id),
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS category_rules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bank_category TEXT NOT NULL,
			bank_sub_category TEXT,
			huvudkategori_id INTEGER NOT NULL REFERENCES categories(id),
			underkategori_id INTEGER REFERENCES categories(id),
			transaction_type TEXT,
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			description TEXT NOT NULL,
			amount INTEGER NOT NULL,
			type TEXT NOT NULL,
			account_id INTEGER NOT NULL REFERENCES accounts(id),
			app_category_id INTEGER REFERENCES categories(id),
			app_sub_category_id INTEGER REFERENCES categories(id),
			bank_category TEXT,
			bank_sub_category TEXT,
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS monthly_budgets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			month_key TEXT NOT NULL,
			lon INTEGER NOT NULL DEFAULT 0,
			barnbidrag INTEGER NOT NULL DEFAULT 0,
			ovrig_inkomst INTEGER NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL REFERENCES users(id),
			UNIQUE(month_key, user_id)
		);

		CREATE TABLE IF NOT EXISTS monthly_account_balances (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			month_key TEXT NOT NULL,
			account_id INTEGER NOT NULL REFERENCES accounts(id),
			calculated_balance INTEGER NOT NULL DEFAULT 0,
			faktiskt_kontosaldo INTEGER,
			user_id TEXT NOT NULL REFERENCES users(id),
			UNIQUE(month_key, account_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS planned_transfers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			from_account_id INTEGER NOT NULL REFERENCES accounts(id),
			to_account_id INTEGER NOT NULL REFERENCES accounts(id),
			amount INTEGER NOT NULL DEFAULT 0,
			month TEXT NOT NULL,
			transfer_type TEXT NOT NULL,
			daily_amount INTEGER NOT NULL DEFAULT 0,
			transfer_days TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS family_members (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS inkomstkallor (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			namn TEXT NOT NULL,
			user_id TEXT NOT NULL REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS inkomstkall_medlemmar (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			inkomstkalla_id INTEGER NOT NULL REFERENCES inkomstkallor(id) ON DELETE CASCADE,
			family_member_id INTEGER NOT NULL REFERENCES family_members(id) ON DELETE CASCADE,
			belopp INTEGER NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL REFERENCES users(id),
			UNIQUE(inkomstkalla_id, family_member_id)
		);

		CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT NOT NULL REFERENCES users(id),
			setting_key TEXT NOT NULL,
			setting_value TEXT NOT NULL,
			UNIQUE(user_id, setting_key)
		);

		CREATE TABLE IF NOT EXISTS user_secrets (
			user_id TEXT NOT NULL REFERENCES users(id),
			secret_type TEXT NOT NULL,
			value TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, secret_type)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create base schema: %w", err)
	}
	return nil
}
