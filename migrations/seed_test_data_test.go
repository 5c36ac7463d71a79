package migrations

import (
	"database/sql"
	"os"
	"testing"

	"familjebudget/backend/models"

	_ "github.com/mattn/go-sqlite3"
)

func setupSchemaDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := CreateBaseSchema(db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if err := AddBankensKontosaldo(db); err != nil {
		t.Fatalf("add bankens_kontosaldo: %v", err)
	}
	return db
}

func TestSeedTestDataSeedsDefaultSettings(t *testing.T) {
	os.Setenv("RESET_DB", "true")
	os.Unsetenv("APP_ENV")
	os.Unsetenv("ENV")
	defer os.Unsetenv("RESET_DB")

	db := setupSchemaDB(t)
	if err := SeedTestData(db); err != nil {
		t.Fatalf("SeedTestData: %v", err)
	}
	// Running twice must not duplicate anything.
	if err := SeedTestData(db); err != nil {
		t.Fatalf("second SeedTestData: %v", err)
	}

	for _, key := range []string{models.SettingExpandedTransactions, models.SettingLastImportBank} {
		var count int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM user_settings WHERE user_id = 'dev-user-1' AND setting_key = ?`, key).Scan(&count)
		if err != nil {
			t.Fatalf("count setting %q: %v", key, err)
		}
		if count != 1 {
			t.Errorf("setting %q: got %d rows, want 1", key, count)
		}
	}

	var accounts int
	if err := db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&accounts); err != nil {
		t.Fatalf("count accounts: %v", err)
	}
	if accounts != 3 {
		t.Errorf("got %d seeded accounts, want 3", accounts)
	}
}

func TestSeedTestDataRefusesProduction(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("RESET_DB", "true")
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("RESET_DB")

	db := setupSchemaDB(t)
	if err := SeedTestData(db); err != nil {
		t.Fatalf("SeedTestData: %v", err)
	}

	var users int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 0 {
		t.Errorf("production guard failed, %d users seeded", users)
	}
}
