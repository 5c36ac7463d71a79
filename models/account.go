package models

type Account struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	AccountTypeID *int   `json:"accountTypeId,omitempty"`
	UserID        string `json:"userId"`
}

type AccountType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UserID      string `json:"userId"`
}
