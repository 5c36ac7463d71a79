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

func TestGetUserSettingMissing(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := authedRequest(t, "GET", "/api/settings/expandedTransactions", nil)
	req = mux.SetURLVars(req, map[string]string{"key": "expandedTransactions"})
	rr := httptest.NewRecorder()
	GetUserSetting(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rr.Code)
	}
}

func TestPutUserSettingUpserts(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	for _, value := range []string{"true", "false"} {
		req := authedRequest(t, "PUT", "/api/settings/expandedTransactions",
			strings.NewReader(`{"settingValue":"`+value+`"}`))
		req = mux.SetURLVars(req, map[string]string{"key": "expandedTransactions"})
		rr := httptest.NewRecorder()
		PutUserSetting(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("put %q: got status %d: %s", value, rr.Code, rr.Body.String())
		}
	}

	req := authedRequest(t, "GET", "/api/settings/expandedTransactions", nil)
	req = mux.SetURLVars(req, map[string]string{"key": "expandedTransactions"})
	rr := httptest.NewRecorder()
	GetUserSetting(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: got status %d", rr.Code)
	}

	var got models.UserSetting
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SettingValue != "false" {
		t.Errorf("settingValue = %q, want %q after second put", got.SettingValue, "false")
	}
}

func TestDeleteUserSetting(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := authedRequest(t, "PUT", "/api/settings/lastImportBank", strings.NewReader(`{"settingValue":"3"}`))
	req = mux.SetURLVars(req, map[string]string{"key": "lastImportBank"})
	rr := httptest.NewRecorder()
	PutUserSetting(rr, req)

	req = authedRequest(t, "DELETE", "/api/settings/lastImportBank", nil)
	req = mux.SetURLVars(req, map[string]string{"key": "lastImportBank"})
	rr = httptest.NewRecorder()
	DeleteUserSetting(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: got status %d", rr.Code)
	}

	req = authedRequest(t, "DELETE", "/api/settings/lastImportBank", nil)
	req = mux.SetURLVars(req, map[string]string{"key": "lastImportBank"})
	rr = httptest.NewRecorder()
	DeleteUserSetting(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: got status %d, want 404", rr.Code)
	}
}
