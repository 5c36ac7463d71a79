package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a Swedish-formatted amount string to öre.
// Handles "1 234,56", non-breaking-space thousands separators, a
// trailing minus ("123,45-") and a "kr" suffix. The result is an
// exact integer; no float passes through.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	for _, r := range []string{" ", " ", " "} {
		cleaned = strings.ReplaceAll(cleaned, r, "")
	}
	cleaned = strings.TrimSuffix(cleaned, "kr")

	negative := false
	if strings.HasPrefix(cleaned, "-") {
		negative = true
		cleaned = cleaned[1:]
	} else if strings.HasSuffix(cleaned, "-") {
		negative = true
		cleaned = cleaned[:len(cleaned)-1]
	} else if strings.HasPrefix(cleaned, "+") {
		cleaned = cleaned[1:]
	}

	// The rightmost of comma and dot is the decimal separator; the
	// other is a thousands separator and is dropped.
	commaIdx := strings.LastIndex(cleaned, ",")
	dotIdx := strings.LastIndex(cleaned, ".")
	decimalSep := ""
	if commaIdx > dotIdx {
		decimalSep = ","
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	} else if dotIdx > commaIdx {
		decimalSep = "."
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		// Some exports write integer amounts with dot thousands
		// separators ("1.234" = 1234 kr). With no comma anywhere, a
		// dot followed by exactly three digits is a thousands
		// separator, not a decimal part.
		if commaIdx == -1 && len(cleaned)-strings.LastIndex(cleaned, ".")-1 == 3 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			decimalSep = ""
		}
	}

	whole := cleaned
	frac := ""
	if decimalSep != "" {
		idx := strings.LastIndex(cleaned, decimalSep)
		whole = cleaned[:idx]
		frac = cleaned[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	kronor, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q: %w", s, err)
	}
	ore, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q: %w", s, err)
	}

	total := kronor*100 + ore
	if negative {
		total = -total
	}
	return total, nil
}
