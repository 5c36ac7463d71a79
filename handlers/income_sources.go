package handlers

import (
	"encoding/json"
	"net/http"

	"familjebudget/backend/database"
	"familjebudget/backend/middleware"
	"familjebudget/backend/models"

	"github.com/gorilla/mux"
)

func GetInkomstkallor(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`SELECT id, namn FROM inkomstkallor WHERE user_id = ? ORDER BY namn`, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	sources := []models.Inkomstkalla{}
	for rows.Next() {
		var s models.Inkomstkalla
		if err := rows.Scan(&s.ID, &s.Namn); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.UserID = userID
		sources = append(sources, s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sources)
}

func AddInkomstkalla(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var s models.Inkomstkalla
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.Namn == "" {
		http.Error(w, "namn is required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`INSERT INTO inkomstkallor (namn, user_id) VALUES (?, ?)`, s.Namn, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.ID = int(id)
	s.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func UpdateInkomstkalla(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var s models.Inkomstkalla
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.Namn == "" {
		http.Error(w, "namn is required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`UPDATE inkomstkallor SET namn = ? WHERE id = ? AND user_id = ?`, s.Namn, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "income source not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteInkomstkalla(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM inkomstkallor WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "income source not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func GetInkomstkallaMedlemmar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	query := `SELECT id, inkomstkalla_id, family_member_id, belopp FROM inkomstkall_medlemmar WHERE user_id = ?`
	args := []interface{}{userID}
	if sourceID := r.URL.Query().Get("inkomstkallaId"); sourceID != "" {
		query += " AND inkomstkalla_id = ?"
		args = append(args, sourceID)
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	links := []models.InkomstkallaMedlem{}
	for rows.Next() {
		var l models.InkomstkallaMedlem
		if err := rows.Scan(&l.ID, &l.InkomstkallaID, &l.FamilyMemberID, &l.Belopp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		l.UserID = userID
		links = append(links, l)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(links)
}

func AddInkomstkallaMedlem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var l models.InkomstkallaMedlem
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if l.InkomstkallaID == 0 || l.FamilyMemberID == 0 {
		http.Error(w, "inkomstkallaId and familyMemberId are required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(
		`INSERT INTO inkomstkall_medlemmar (inkomstkalla_id, family_member_id, belopp, user_id) VALUES (?, ?, ?, ?)`,
		l.InkomstkallaID, l.FamilyMemberID, l.Belopp, userID)
	if err != nil {
		if isUniqueViolation(err) {
			http.Error(w, "member is already linked to this income source", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	l.ID = int(id)
	l.UserID = userID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

func UpdateInkomstkallaMedlem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var req struct {
		Belopp *int64 `json:"belopp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Belopp == nil {
		http.Error(w, "belopp is required", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`UPDATE inkomstkall_medlemmar SET belopp = ? WHERE id = ? AND user_id = ?`, *req.Belopp, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "income source link not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteInkomstkallaMedlem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM inkomstkall_medlemmar WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "income source link not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}
