package models

// Category is an app-internal category. A row with a nil ParentID is a
// huvudkategori; rows pointing at one are its underkategorier.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parentId,omitempty"`
	UserID   string `json:"userId"`
}

// CategoryRule maps a bank-reported category string (and optionally
// subcategory) to the app's own categories. TransactionType limits the
// rule to positive or negative amounts; empty matches both.
type CategoryRule struct {
	ID              int    `json:"id"`
	BankCategory    string `json:"bankCategory"`
	BankSubCategory string `json:"bankSubCategory,omitempty"`
	HuvudkategoriID int    `json:"huvudkategoriId"`
	UnderkategoriID *int   `json:"underkategoriId,omitempty"`
	TransactionType string `json:"transactionType,omitempty"`
	UserID          string `json:"userId"`
}
