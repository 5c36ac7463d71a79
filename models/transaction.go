package models

// Transaction is a single bank transaction. Amount is in öre (1/100
// SEK) and stays an integer everywhere; the sign carries debit/credit.
// Date is "YYYY-MM-DD".
type Transaction struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	Description      string `json:"description"`
	Amount           int64  `json:"amount"`
	Type             string `json:"type"`
	AccountID        int    `json:"accountId"`
	AppCategoryID    *int   `json:"appCategoryId,omitempty"`
	AppSubCategoryID *int   `json:"appSubCategoryId,omitempty"`
	BankCategory     string `json:"bankCategory,omitempty"`
	BankSubCategory  string `json:"bankSubCategory,omitempty"`
	UserID           string `json:"userId"`
}

// MonthKeyOf returns the transaction's "YYYY-MM" month.
func (t Transaction) MonthKeyOf() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}
