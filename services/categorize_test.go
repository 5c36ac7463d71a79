package services

import (
	"reflect"
	"testing"

	"familjebudget/backend/models"
)

func sub(id int) *int { return &id }

func TestMatchRuleExactCategory(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: 1, BankCategory: "Mat och dryck", HuvudkategoriID: 1},
	}

	if got := MatchRule("Mat och dryck", "", -5000, rules); got == nil || got.ID != 1 {
		t.Errorf("Expected rule 1 to match, got %v", got)
	}

	// Case sensitive, no normalization
	if got := MatchRule("mat och dryck", "", -5000, rules); got != nil {
		t.Errorf("Expected no match for different case, got rule %d", got.ID)
	}
}

func TestMatchRuleSubCategoryWins(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: 1, BankCategory: "Mat och dryck", HuvudkategoriID: 1},
		{ID: 2, BankCategory: "Mat och dryck", BankSubCategory: "Restaurang", HuvudkategoriID: 1, UnderkategoriID: sub(5)},
	}

	got := MatchRule("Mat och dryck", "Restaurang", -5000, rules)
	if got == nil || got.ID != 2 {
		t.Errorf("Expected subcategory rule 2 to win, got %v", got)
	}

	got = MatchRule("Mat och dryck", "Livsmedel", -5000, rules)
	if got == nil || got.ID != 1 {
		t.Errorf("Expected fallback to category rule 1, got %v", got)
	}
}

func TestMatchRuleTransactionType(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: 1, BankCategory: "Övrigt", HuvudkategoriID: 1, TransactionType: models.TransactionTypeNegative},
		{ID: 2, BankCategory: "Övrigt", HuvudkategoriID: 2, TransactionType: models.TransactionTypePositive},
	}

	if got := MatchRule("Övrigt", "", -100, rules); got == nil || got.ID != 1 {
		t.Errorf("Expected negative rule for expense, got %v", got)
	}
	if got := MatchRule("Övrigt", "", 100, rules); got == nil || got.ID != 2 {
		t.Errorf("Expected positive rule for income, got %v", got)
	}
}

func TestUncategorizedCategories(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: 1, BankCategory: "Mat och dryck", HuvudkategoriID: 1},
	}

	transactions := []models.Transaction{
		{BankCategory: "Transport", BankSubCategory: "Bränsle"},
		{BankCategory: "Mat och dryck", BankSubCategory: "Livsmedel"},
		{BankCategory: "Nöje", BankSubCategory: "Bio"},
		{BankCategory: "Transport", BankSubCategory: "Parkering"},
		{BankCategory: "Transport", BankSubCategory: "Bränsle"},
		{BankCategory: "Nöje"},
	}

	got := UncategorizedCategories(transactions, rules)

	if len(got) != 2 {
		t.Fatalf("Expected 2 uncategorized groups, got %d", len(got))
	}

	// First-seen order
	if got[0].BankCategory != "Transport" || got[1].BankCategory != "Nöje" {
		t.Errorf("Expected order [Transport, Nöje], got [%s, %s]", got[0].BankCategory, got[1].BankCategory)
	}

	if got[0].Count != 3 {
		t.Errorf("Expected 3 Transport rows, got %d", got[0].Count)
	}

	// Distinct subcategories, duplicates collapsed
	wantSubs := []string{"Bränsle", "Parkering"}
	if !reflect.DeepEqual(got[0].SubCategories, wantSubs) {
		t.Errorf("Expected subcategories %v, got %v", wantSubs, got[0].SubCategories)
	}

	if got[1].Count != 2 {
		t.Errorf("Expected 2 Nöje rows, got %d", got[1].Count)
	}
	if !reflect.DeepEqual(got[1].SubCategories, []string{"Bio"}) {
		t.Errorf("Expected Nöje subcategories [Bio], got %v", got[1].SubCategories)
	}
}

func TestUncategorizedCategoriesSubCategoryRuleCoversWholeCategory(t *testing.T) {
	// A rule with only a subcategory still marks its whole bank
	// category as covered in the uncategorized report.
	rules := []models.CategoryRule{
		{ID: 1, BankCategory: "Transport", BankSubCategory: "Bränsle", HuvudkategoriID: 1},
	}

	transactions := []models.Transaction{
		{BankCategory: "Transport", BankSubCategory: "Parkering"},
	}

	if got := UncategorizedCategories(transactions, rules); len(got) != 0 {
		t.Errorf("Expected 0 uncategorized groups, got %d", len(got))
	}
}

func TestUncategorizedCategoriesSkipsEmptyBankCategory(t *testing.T) {
	transactions := []models.Transaction{
		{Description: "Swish utan kategori"},
	}

	if got := UncategorizedCategories(transactions, nil); len(got) != 0 {
		t.Errorf("Expected no groups for rows without bank category, got %d", len(got))
	}
}
