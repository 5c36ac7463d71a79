package models

type Bank struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// BankCsvMapping describes how to read one bank's statement export:
// which column headers carry the date, description, amount and the
// bank's own category strings. At most one mapping per bank is active.
type BankCsvMapping struct {
	ID                int    `json:"id"`
	BankID            int    `json:"bankId"`
	Name              string `json:"name"`
	DateColumn        string `json:"dateColumn"`
	DescriptionColumn string `json:"descriptionColumn"`
	AmountColumn      string `json:"amountColumn"`
	CategoryColumn    string `json:"categoryColumn,omitempty"`
	SubCategoryColumn string `json:"subCategoryColumn,omitempty"`
	IsActive          bool   `json:"isActive"`
	UserID            string `json:"userId"`
}
