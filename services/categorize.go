package services

import (
	"familjebudget/backend/models"
)

// UncategorizedCategory is one bank-reported category string that no
// rule covers, with everything the user needs to create a rule for
// it: how often it occurred and which subcategory strings were seen.
type UncategorizedCategory struct {
	BankCategory  string   `json:"bankCategory"`
	Count         int      `json:"count"`
	SubCategories []string `json:"subCategories"`
}

// MatchRule finds the rule classifying a transaction, or nil. The
// bank category string must match exactly (case sensitive). A rule
// carrying a subcategory only applies to that subcategory and wins
// over a category-only rule; a rule with a transaction type only
// applies to amounts of that sign.
func MatchRule(bankCategory, bankSubCategory string, amount int64, rules []models.CategoryRule) *models.CategoryRule {
	var categoryOnly *models.CategoryRule
	for i := range rules {
		r := &rules[i]
		if r.BankCategory != bankCategory {
			continue
		}
		if !signMatches(r.TransactionType, amount) {
			continue
		}
		if r.BankSubCategory != "" {
			if r.BankSubCategory == bankSubCategory {
				return r
			}
			continue
		}
		if categoryOnly == nil {
			categoryOnly = r
		}
	}
	return categoryOnly
}

func signMatches(transactionType string, amount int64) bool {
	switch transactionType {
	case models.TransactionTypePositive:
		return amount >= 0
	case models.TransactionTypeNegative:
		return amount < 0
	default:
		return true
	}
}

// UncategorizedCategories groups transactions whose bank category no
// rule covers, in first-seen order. Coverage is decided on the bank
// category string alone: a rule matching the top category is treated
// as covering all its subcategories, even when other rules are
// subcategory specific. Each distinct subcategory appears once per
// group regardless of how many rows carried it.
func UncategorizedCategories(transactions []models.Transaction, rules []models.CategoryRule) []UncategorizedCategory {
	ruled := make(map[string]bool, len(rules))
	for _, r := range rules {
		ruled[r.BankCategory] = true
	}

	var order []string
	groups := make(map[string]*UncategorizedCategory)
	seenSub := make(map[string]map[string]bool)

	for _, t := range transactions {
		if t.BankCategory == "" || ruled[t.BankCategory] {
			continue
		}
		g, ok := groups[t.BankCategory]
		if !ok {
			g = &UncategorizedCategory{BankCategory: t.BankCategory}
			groups[t.BankCategory] = g
			seenSub[t.BankCategory] = make(map[string]bool)
			order = append(order, t.BankCategory)
		}
		g.Count++
		if t.BankSubCategory != "" && !seenSub[t.BankCategory][t.BankSubCategory] {
			seenSub[t.BankCategory][t.BankSubCategory] = true
			g.SubCategories = append(g.SubCategories, t.BankSubCategory)
		}
	}

	result := make([]UncategorizedCategory, 0, len(order))
	for _, name := range order {
		result = append(result, *groups[name])
	}
	return result
}
