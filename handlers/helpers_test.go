package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/migrations"

	_ "github.com/mattn/go-sqlite3"
)

const TestUserID = "test-user-1"

// setupTestDB swaps database.DB for an in-memory sqlite with the full
// schema applied and a test user seeded. The returned cleanup restores
// the previous handle.
func setupTestDB(t *testing.T) func() {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A single connection keeps the in-memory database alive.
	db.SetMaxOpenConns(1)

	if err := migrations.CreateBaseSchema(db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if err := migrations.AddBankensKontosaldo(db); err != nil {
		t.Fatalf("add bankens_kontosaldo: %v", err)
	}
	if err := migrations.AddMappingActiveIndex(db); err != nil {
		t.Fatalf("add mapping index: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO users (id, email, name) VALUES (?, ?, ?)`,
		TestUserID, "test@example.com", "Test User"); err != nil {
		t.Fatalf("seed test user: %v", err)
	}

	previous := database.DB
	database.DB = db
	return func() {
		database.DB = previous
		db.Close()
	}
}

// authedRequest builds a request carrying the test user in its context,
// the way AuthMiddleware would.
func authedRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	return req.WithContext(ctx)
}
