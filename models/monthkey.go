package models

import (
	"fmt"
	"regexp"
	"time"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonthKey reports whether s is a "YYYY-MM" month key.
func ValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// ParseMonthKey returns the year and month named by a month key.
func ParseMonthKey(s string) (int, time.Month, error) {
	if !ValidMonthKey(s) {
		return 0, 0, fmt.Errorf("invalid month key %q, expected YYYY-MM", s)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
