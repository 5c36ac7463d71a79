package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func TestAddAndGetAccountTypes(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := authedRequest(t, "POST", "/api/account-types",
		strings.NewReader(`{"name":"Lönekonto","description":"Vardagsekonomi"}`))
	rr := httptest.NewRecorder()
	AddAccountType(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("add: got status %d: %s", rr.Code, rr.Body.String())
	}
	var created models.AccountType
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == 0 || created.Name != "Lönekonto" {
		t.Fatalf("unexpected created account type: %+v", created)
	}

	req = authedRequest(t, "GET", "/api/account-types", nil)
	rr = httptest.NewRecorder()
	GetAccountTypes(rr, req)

	var got []models.AccountType
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Vardagsekonomi" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestAddAccountTypeDuplicateName(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	for i, want := range []int{http.StatusOK, http.StatusConflict} {
		req := authedRequest(t, "POST", "/api/account-types", strings.NewReader(`{"name":"Sparkonto"}`))
		rr := httptest.NewRecorder()
		AddAccountType(rr, req)
		if rr.Code != want {
			t.Fatalf("attempt %d: got status %d, want %d", i, rr.Code, want)
		}
	}
}

func TestUpdateAccountTypePartial(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := authedRequest(t, "POST", "/api/account-types",
		strings.NewReader(`{"name":"Buffert","description":"Oväntade utgifter"}`))
	rr := httptest.NewRecorder()
	AddAccountType(rr, req)
	var created models.AccountType
	json.Unmarshal(rr.Body.Bytes(), &created)

	req = authedRequest(t, "PATCH", "/api/account-types/1", strings.NewReader(`{"name":"Buffertkonto"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	UpdateAccountType(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got status %d: %s", rr.Code, rr.Body.String())
	}

	req = authedRequest(t, "GET", "/api/account-types", nil)
	rr = httptest.NewRecorder()
	GetAccountTypes(rr, req)
	var got []models.AccountType
	json.Unmarshal(rr.Body.Bytes(), &got)
	if got[0].Name != "Buffertkonto" || got[0].Description != "Oväntade utgifter" {
		t.Fatalf("description should survive a name-only patch: %+v", got[0])
	}
}

func TestDeleteAccountTypeNotFound(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := authedRequest(t, "DELETE", "/api/account-types/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rr := httptest.NewRecorder()
	DeleteAccountType(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rr.Code)
	}
}

func TestHandlersRejectMissingUser(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/api/account-types", nil)
	rr := httptest.NewRecorder()
	GetAccountTypes(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rr.Code)
	}
}
