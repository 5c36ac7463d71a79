package models

import "testing"

func TestEncodeTransferDays(t *testing.T) {
	cases := []struct {
		days []int
		want string
	}{
		{nil, ""},
		{[]int{1}, "1"},
		{[]int{5, 1, 3}, "1,3,5"},
		{[]int{1, 1, 5, 5}, "1,5"},
	}
	for _, tc := range cases {
		if got := EncodeTransferDays(tc.days); got != tc.want {
			t.Errorf("EncodeTransferDays(%v) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestDecodeTransferDays(t *testing.T) {
	days, err := DecodeTransferDays("1,3,5")
	if err != nil {
		t.Fatalf("DecodeTransferDays: %v", err)
	}
	if len(days) != 3 || days[0] != 1 || days[1] != 3 || days[2] != 5 {
		t.Errorf("got %v, want [1 3 5]", days)
	}

	if days, err := DecodeTransferDays(""); err != nil || days != nil {
		t.Errorf("empty string should decode to nil, got %v, %v", days, err)
	}

	if _, err := DecodeTransferDays("1,x"); err == nil {
		t.Error("expected error for non-numeric day")
	}
}

func TestPlannedTransferValidate(t *testing.T) {
	base := PlannedTransfer{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        100,
		Month:         "2025-08",
	}

	monthly := base
	monthly.TransferType = TransferTypeMonthly
	if err := monthly.Validate(); err != nil {
		t.Errorf("monthly transfer should validate: %v", err)
	}

	daily := base
	daily.TransferType = TransferTypeDaily
	if err := daily.Validate(); err == nil {
		t.Error("daily transfer without days should fail")
	}
	daily.TransferDays = []int{1, 5}
	if err := daily.Validate(); err != nil {
		t.Errorf("daily transfer with days should validate: %v", err)
	}
	daily.TransferDays = []int{7}
	if err := daily.Validate(); err == nil {
		t.Error("day 7 should be out of range")
	}

	same := monthly
	same.ToAccountID = same.FromAccountID
	if err := same.Validate(); err == nil {
		t.Error("same from and to account should fail")
	}

	unknown := base
	unknown.TransferType = "weekly"
	if err := unknown.Validate(); err == nil {
		t.Error("unknown transfer type should fail")
	}
}

func TestValidMonthKey(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-06"}
	invalid := []string{"", "2025-13", "2025-00", "2025-1", "25-01", "2025/01", "2025-01-01"}

	for _, s := range valid {
		if !ValidMonthKey(s) {
			t.Errorf("ValidMonthKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidMonthKey(s) {
			t.Errorf("ValidMonthKey(%q) = true, want false", s)
		}
	}
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := ParseMonthKey("2025-08")
	if err != nil {
		t.Fatalf("ParseMonthKey: %v", err)
	}
	if year != 2025 || int(month) != 8 {
		t.Errorf("got %d-%d, want 2025-8", year, month)
	}

	if _, _, err := ParseMonthKey("nope"); err == nil {
		t.Error("expected error for malformed month key")
	}
}
