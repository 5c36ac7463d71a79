package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"familjebudget/backend/database"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func TestAddTransactionRecalculatesBalance(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedAccount(t, 1, "Lönekonto")

	body := `{"date":"2025-08-04","description":"ICA MAXI","amount":-125050,"accountId":1}`
	req := authedRequest(t, "POST", "/api/transactions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	AddTransaction(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("add: got status %d: %s", rr.Code, rr.Body.String())
	}

	var created models.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated transaction id")
	}
	if created.Type != "negative" {
		t.Errorf("type = %q, want negative", created.Type)
	}

	var balance int64
	err := database.DB.QueryRow(`
		SELECT calculated_balance FROM monthly_account_balances
		WHERE month_key = '2025-08' AND account_id = 1 AND user_id = ?`, TestUserID).Scan(&balance)
	if err != nil {
		t.Fatalf("read balance: %v", err)
	}
	if balance != -125050 {
		t.Errorf("calculated_balance = %d, want -125050", balance)
	}
}

func TestGetTransactionsMonthFilter(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedAccount(t, 1, "Lönekonto")

	for _, body := range []string{
		`{"id":"t-aug","date":"2025-08-04","description":"aug","amount":-100,"accountId":1}`,
		`{"id":"t-sep","date":"2025-09-01","description":"sep","amount":-200,"accountId":1}`,
	} {
		req := authedRequest(t, "POST", "/api/transactions", strings.NewReader(body))
		rr := httptest.NewRecorder()
		AddTransaction(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("add: got status %d: %s", rr.Code, rr.Body.String())
		}
	}

	req := authedRequest(t, "GET", "/api/transactions?monthKey=2025-08", nil)
	rr := httptest.NewRecorder()
	GetTransactions(rr, req)

	var got []models.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t-aug" {
		t.Fatalf("month filter failed: %+v", got)
	}
}

func TestUpdateTransactionAcrossMonths(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedAccount(t, 1, "Lönekonto")

	body := `{"id":"t-1","date":"2025-08-04","description":"hyra","amount":-900000,"accountId":1}`
	req := authedRequest(t, "POST", "/api/transactions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	AddTransaction(rr, req)

	req = authedRequest(t, "PATCH", "/api/transactions/t-1", strings.NewReader(`{"date":"2025-09-01"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "t-1"})
	rr = httptest.NewRecorder()
	UpdateTransaction(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got status %d: %s", rr.Code, rr.Body.String())
	}

	var augBalance, sepBalance int64
	database.DB.QueryRow(`
		SELECT calculated_balance FROM monthly_account_balances
		WHERE month_key = '2025-08' AND account_id = 1 AND user_id = ?`, TestUserID).Scan(&augBalance)
	database.DB.QueryRow(`
		SELECT calculated_balance FROM monthly_account_balances
		WHERE month_key = '2025-09' AND account_id = 1 AND user_id = ?`, TestUserID).Scan(&sepBalance)
	if augBalance != 0 {
		t.Errorf("august balance = %d, want 0 after move", augBalance)
	}
	if sepBalance != -900000 {
		t.Errorf("september balance = %d, want -900000", sepBalance)
	}
}

func TestDeleteTransaction(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedAccount(t, 1, "Lönekonto")

	body := `{"id":"t-del","date":"2025-08-10","description":"bio","amount":-15000,"accountId":1}`
	req := authedRequest(t, "POST", "/api/transactions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	AddTransaction(rr, req)

	req = authedRequest(t, "DELETE", "/api/transactions/t-del", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "t-del"})
	rr = httptest.NewRecorder()
	DeleteTransaction(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: got status %d", rr.Code)
	}

	var balance int64
	err := database.DB.QueryRow(`
		SELECT calculated_balance FROM monthly_account_balances
		WHERE month_key = '2025-08' AND account_id = 1 AND user_id = ?`, TestUserID).Scan(&balance)
	if err != nil {
		t.Fatalf("read balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("calculated_balance = %d, want 0 after delete", balance)
	}
}
