package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PlannedTransfer is a scheduled movement between two accounts in a
// given month. A monthly transfer moves Amount once; a daily transfer
// moves DailyAmount on every day of the month whose weekday is in
// TransferDays (0=Sunday..6=Saturday).
type PlannedTransfer struct {
	ID            int    `json:"id"`
	FromAccountID int    `json:"fromAccountId"`
	ToAccountID   int    `json:"toAccountId"`
	Amount        int64  `json:"amount"`
	Month         string `json:"month"`
	TransferType  string `json:"transferType"`
	DailyAmount   int64  `json:"dailyAmount,omitempty"`
	TransferDays  []int  `json:"transferDays,omitempty"`
	UserID        string `json:"userId"`
}

// Validate checks the schedule fields before the transfer is stored.
func (p PlannedTransfer) Validate() error {
	switch p.TransferType {
	case TransferTypeMonthly:
	case TransferTypeDaily:
		if len(p.TransferDays) == 0 {
			return fmt.Errorf("daily transfer requires at least one transfer day")
		}
		for _, d := range p.TransferDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("transfer day %d out of range 0-6", d)
			}
		}
	default:
		return fmt.Errorf("unknown transfer type %q", p.TransferType)
	}
	if p.FromAccountID == p.ToAccountID {
		return fmt.Errorf("transfer must move between two different accounts")
	}
	return nil
}

// EncodeTransferDays serializes a weekday set to the "1,3,5" form used
// in the transfer_days column. Days are deduplicated and sorted.
func EncodeTransferDays(days []int) string {
	seen := make(map[int]bool)
	var out []int
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	parts := make([]string, len(out))
	for i, d := range out {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// DecodeTransferDays parses the transfer_days column.
func DecodeTransferDays(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad transfer day %q: %w", p, err)
		}
		days = append(days, d)
	}
	return days, nil
}
