package models

// Transaction and rule types. Bank rows with a negative amount are
// expenses, positive ones income; category rules can be restricted to
// one sign so "Övrigt" as an expense and "Övrigt" as a refund can map
// to different app categories.
const (
	TransactionTypePositive = "positive"
	TransactionTypeNegative = "negative"
)

// Planned transfer schedules.
const (
	TransferTypeMonthly = "monthly"
	TransferTypeDaily   = "daily"
)

// Setting keys that the frontend is known to use.
const (
	SettingExpandedTransactions = "expanded_transactions"
	SettingLastImportBank       = "last_import_bank"
)
