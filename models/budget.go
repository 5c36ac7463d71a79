package models

// MonthlyBudget holds the planned income for one month. One row per
// user and monthKey. All amounts in öre.
type MonthlyBudget struct {
	ID           int    `json:"id"`
	MonthKey     string `json:"monthKey"`
	Lon          int64  `json:"lon"`
	Barnbidrag   int64  `json:"barnbidrag"`
	OvrigInkomst int64  `json:"ovrigInkomst"`
	UserID       string `json:"userId"`
}

// MonthlyAccountBalance reconciles one account for one month.
// CalculatedBalance is derived from transactions and planned
// transfers; FaktisktKontosaldo is what the user says the account
// really holds, BankensKontosaldo what the bank reported. The two
// latter are facts, never recomputed.
type MonthlyAccountBalance struct {
	ID                 int    `json:"id"`
	MonthKey           string `json:"monthKey"`
	AccountID          int    `json:"accountId"`
	CalculatedBalance  int64  `json:"calculatedBalance"`
	FaktisktKontosaldo *int64 `json:"faktisktKontosaldo,omitempty"`
	BankensKontosaldo  *int64 `json:"bankensKontosaldo,omitempty"`
	UserID             string `json:"userId"`
}
