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

func seedCategories(t *testing.T) {
	t.Helper()
	stmts := []string{
		`INSERT INTO categories (id, name, parent_id, user_id) VALUES (1, 'Mat', NULL, '` + TestUserID + `')`,
		`INSERT INTO categories (id, name, parent_id, user_id) VALUES (2, 'Dagligvaror', 1, '` + TestUserID + `')`,
	}
	for _, s := range stmts {
		if _, err := database.DB.Exec(s); err != nil {
			t.Fatalf("seed categories: %v", err)
		}
	}
}

func TestAddCategoryRuleValidation(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedCategories(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"bankCategory":"Mat och dryck","huvudkategoriId":1}`, http.StatusOK},
		{"missing bankCategory", `{"huvudkategoriId":1}`, http.StatusBadRequest},
		{"missing huvudkategoriId", `{"bankCategory":"Mat och dryck"}`, http.StatusBadRequest},
		{"bad transactionType", `{"bankCategory":"Mat","huvudkategoriId":1,"transactionType":"both"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(t, "POST", "/api/category-rules", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			AddCategoryRule(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("got status %d, want %d: %s", rr.Code, tc.want, rr.Body.String())
			}
		})
	}
}

func TestGetCategoryRuleNotFound(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := authedRequest(t, "GET", "/api/category-rules/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rr := httptest.NewRecorder()
	GetCategoryRule(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rr.Code)
	}
}

func TestUpdateCategoryRuleClearsSubcategory(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedCategories(t)

	body := `{"bankCategory":"Mat och dryck","bankSubCategory":"Dagligvaror","huvudkategoriId":1,"underkategoriId":2}`
	req := authedRequest(t, "POST", "/api/category-rules", strings.NewReader(body))
	rr := httptest.NewRecorder()
	AddCategoryRule(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("add: got status %d: %s", rr.Code, rr.Body.String())
	}

	req = authedRequest(t, "PATCH", "/api/category-rules/1", strings.NewReader(`{"bankSubCategory":""}`))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	UpdateCategoryRule(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got status %d: %s", rr.Code, rr.Body.String())
	}

	req = authedRequest(t, "GET", "/api/category-rules", nil)
	rr = httptest.NewRecorder()
	GetCategoryRules(rr, req)
	var got []models.CategoryRule
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].BankSubCategory != "" {
		t.Fatalf("subcategory not cleared: %+v", got)
	}
}

func TestDeleteCategoryRule(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedCategories(t)

	body := `{"bankCategory":"Transport","huvudkategoriId":1}`
	req := authedRequest(t, "POST", "/api/category-rules", strings.NewReader(body))
	rr := httptest.NewRecorder()
	AddCategoryRule(rr, req)

	req = authedRequest(t, "DELETE", "/api/category-rules/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	DeleteCategoryRule(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: got status %d", rr.Code)
	}

	req = authedRequest(t, "GET", "/api/category-rules", nil)
	rr = httptest.NewRecorder()
	GetCategoryRules(rr, req)
	var got []models.CategoryRule
	json.Unmarshal(rr.Body.Bytes(), &got)
	if len(got) != 0 {
		t.Fatalf("rule not deleted: %+v", got)
	}
}
