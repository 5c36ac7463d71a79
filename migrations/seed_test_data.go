package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"familjebudget/backend/models"
)

// SeedTestData seeds test data for development and PR environments
// This should only be called in non-production environments
func SeedTestData(db *sql.DB) error {
	// Check if we're in production - we should NEVER run this in production
	if os.Getenv("APP_ENV") == "production" || os.Getenv("ENV") == "production" {
		log.Println("Refusing to seed test data in production environment")
		return nil
	}

	// Only seed if explicitly requested or in dev/PR environment
	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		log.Println("Skipping test data seeding - not explicitly requested and not in dev/PR environment")
		return nil
	}

	log.Println("Seeding test data for development/PR environment...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const devUser = "dev-user-1"

	_, err = tx.Exec(`INSERT OR IGNORE INTO users (id, email, name) VALUES (?, ?, ?)`,
		devUser, "dev@example.com", "Utvecklare")
	if err != nil {
		return fmt.Errorf("failed to seed dev user: %w", err)
	}

	// Account types and accounts
	_, err = tx.Exec(`
		INSERT OR IGNORE INTO account_types (name, description, user_id) VALUES
			('Lönekonto', 'Konto dit lönen betalas ut', ?),
			('Sparkonto', 'Räntebärande sparande', ?),
			('Matkonto', 'Kort för dagligvaror', ?)
	`, devUser, devUser, devUser)
	if err != nil {
		return fmt.Errorf("failed to seed account types: %w", err)
	}

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO accounts (name, category, account_type_id, user_id) VALUES
			('Gemensamt lönekonto', 'vardag', 1, ?),
			('Buffert', 'sparande', 2, ?),
			('Matkortet', 'vardag', 3, ?)
	`, devUser, devUser, devUser)
	if err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}

	// A bank with an active statement mapping
	_, err = tx.Exec(`INSERT OR IGNORE INTO banks (name, user_id) VALUES ('Swedbank', ?)`, devUser)
	if err != nil {
		return fmt.Errorf("failed to seed banks: %w", err)
	}

	var mappingCount int
	if err = tx.QueryRow(`SELECT COUNT(*) FROM bank_csv_mappings`).Scan(&mappingCount); err != nil {
		return fmt.Errorf("failed to count mappings: %w", err)
	}
	if mappingCount == 0 {
		_, err = tx.Exec(`
			INSERT INTO bank_csv_mappings
				(bank_id, name, date_column, description_column, amount_column, category_column, subcategory_column, is_active, user_id)
			VALUES (1, 'Swedbank export', 'Datum', 'Beskrivning', 'Belopp', 'Kategori', 'Underkategori', 1, ?)
		`, devUser)
		if err != nil {
			return fmt.Errorf("failed to seed csv mapping: %w", err)
		}
	}

	// Base categories and a couple of rules
	var categoryCount int
	if err = tx.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if categoryCount == 0 {
		_, err = tx.Exec(`
			INSERT INTO categories (name, parent_id, user_id) VALUES
				('Mat', NULL, ?),
				('Boende', NULL, ?),
				('Transport', NULL, ?)
		`, devUser, devUser, devUser)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO categories (name, parent_id, user_id) VALUES
				('Dagligvaror', 1, ?),
				('Restaurang', 1, ?)
		`, devUser, devUser)
		if err != nil {
			return fmt.Errorf("failed to seed subcategories: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO category_rules
				(bank_category, bank_sub_category, huvudkategori_id, underkategori_id, transaction_type, user_id)
			VALUES
				('Mat och dryck', 'Livsmedel', 1, 4, 'negative', ?),
				('Mat och dryck', NULL, 1, NULL, 'negative', ?)
		`, devUser, devUser)
		if err != nil {
			return fmt.Errorf("failed to seed category rules: %w", err)
		}
	}

	// Default settings the frontend expects to find
	_, err = tx.Exec(`
		INSERT OR IGNORE INTO user_settings (user_id, setting_key, setting_value) VALUES
			(?, ?, 'false'),
			(?, ?, '1')
	`, devUser, models.SettingExpandedTransactions, devUser, models.SettingLastImportBank)
	if err != nil {
		return fmt.Errorf("failed to seed user settings: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	log.Println("Test data seeded successfully")
	return nil
}
