package models

type FamilyMember struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// Inkomstkalla is an income source (salary, child allowance, ...).
type Inkomstkalla struct {
	ID     int    `json:"id"`
	Namn   string `json:"namn"`
	UserID string `json:"userId"`
}

// InkomstkallaMedlem ties an income source to a family member with a
// monthly amount in öre.
type InkomstkallaMedlem struct {
	ID             int    `json:"id"`
	InkomstkallaID int    `json:"inkomstkallaId"`
	FamilyMemberID int    `json:"familyMemberId"`
	Belopp         int64  `json:"belopp"`
	UserID         string `json:"userId"`
}
