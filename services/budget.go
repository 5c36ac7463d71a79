package services

import (
	"database/sql"
	"fmt"
	"time"

	"familjebudget/backend/models"
)

// WeekdayCount returns how many times a weekday occurs in the given
// calendar month.
func WeekdayCount(year int, month time.Month, weekday time.Weekday) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	count := 0
	for d := 0; d < daysInMonth; d++ {
		if first.AddDate(0, 0, d).Weekday() == weekday {
			count++
		}
	}
	return count
}

// TransferContribution returns the amount a planned transfer moves
// during its month: the fixed amount once for monthly transfers,
// dailyAmount times the number of matching weekdays for daily ones.
func TransferContribution(t models.PlannedTransfer) (int64, error) {
	switch t.TransferType {
	case models.TransferTypeMonthly:
		return t.Amount, nil
	case models.TransferTypeDaily:
		year, month, err := models.ParseMonthKey(t.Month)
		if err != nil {
			return 0, err
		}
		var occurrences int
		seen := make(map[int]bool)
		for _, d := range t.TransferDays {
			if d < 0 || d > 6 || seen[d] {
				continue
			}
			seen[d] = true
			occurrences += WeekdayCount(year, month, time.Weekday(d))
		}
		return t.DailyAmount * int64(occurrences), nil
	default:
		return 0, fmt.Errorf("unknown transfer type %q", t.TransferType)
	}
}

// RecalculateMonth rebuilds calculatedBalance for every account a
// user owns, for one month: the sum of that month's transactions plus
// planned transfer contributions (negative on the source account,
// positive on the destination). Rows are upserted per (month,
// account); faktiskt_kontosaldo and bankens_kontosaldo are user and
// bank facts and are left alone.
func RecalculateMonth(db *sql.DB, userID, monthKey string) error {
	if !models.ValidMonthKey(monthKey) {
		return fmt.Errorf("invalid month key %q", monthKey)
	}

	balances := make(map[int]int64)

	accountRows, err := db.Query(`SELECT id FROM accounts WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	defer accountRows.Close()
	for accountRows.Next() {
		var id int
		if err := accountRows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan account: %w", err)
		}
		balances[id] = 0
	}
	if err := accountRows.Err(); err != nil {
		return err
	}

	txRows, err := db.Query(`
		SELECT account_id, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND substr(date, 1, 7) = ?
		GROUP BY account_id
	`, userID, monthKey)
	if err != nil {
		return fmt.Errorf("failed to sum transactions: %w", err)
	}
	defer txRows.Close()
	for txRows.Next() {
		var accountID int
		var sum int64
		if err := txRows.Scan(&accountID, &sum); err != nil {
			return fmt.Errorf("failed to scan transaction sum: %w", err)
		}
		balances[accountID] += sum
	}
	if err := txRows.Err(); err != nil {
		return err
	}

	transfers, err := loadTransfers(db, userID, monthKey)
	if err != nil {
		return err
	}
	for _, t := range transfers {
		contribution, err := TransferContribution(t)
		if err != nil {
			return fmt.Errorf("transfer %d: %w", t.ID, err)
		}
		balances[t.FromAccountID] -= contribution
		balances[t.ToAccountID] += contribution
	}

	for accountID, balance := range balances {
		_, err := db.Exec(`
			INSERT INTO monthly_account_balances (month_key, account_id, calculated_balance, user_id)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(month_key, account_id, user_id) DO UPDATE SET calculated_balance = excluded.calculated_balance
		`, monthKey, accountID, balance, userID)
		if err != nil {
			return fmt.Errorf("failed to upsert balance for account %d: %w", accountID, err)
		}
	}

	return nil
}

func loadTransfers(db *sql.DB, userID, monthKey string) ([]models.PlannedTransfer, error) {
	rows, err := db.Query(`
		SELECT id, from_account_id, to_account_id, amount, month, transfer_type, daily_amount, transfer_days
		FROM planned_transfers
		WHERE user_id = ? AND month = ?
	`, userID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load planned transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.PlannedTransfer
	for rows.Next() {
		var t models.PlannedTransfer
		var days string
		err := rows.Scan(&t.ID, &t.FromAccountID, &t.ToAccountID, &t.Amount, &t.Month, &t.TransferType, &t.DailyAmount, &days)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned transfer: %w", err)
		}
		t.TransferDays, err = models.DecodeTransferDays(days)
		if err != nil {
			return nil, fmt.Errorf("transfer %d: %w", t.ID, err)
		}
		t.UserID = userID
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
