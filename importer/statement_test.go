package importer

import (
	"testing"

	"familjebudget/backend/models"
)

var swedbankMapping = models.BankCsvMapping{
	DateColumn:        "Datum",
	DescriptionColumn: "Beskrivning",
	AmountColumn:      "Belopp",
	CategoryColumn:    "Kategori",
	SubCategoryColumn: "Underkategori",
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"123,45", 12345},
		{"-123,45", -12345},
		{"123,45-", -12345},
		{"1 234,56", 123456},
		{"1 234,56", 123456},
		{"1.234,56", 123456},
		{"1,234.56", 123456},
		{"500", 50000},
		{"500 kr", 50000},
		{"0,5", 50},
		{"+42,00", 4200},
		{"1.234", 123400},
		{"-1.234", -123400},
		{"1.234.567", 123456700},
		{"1.23", 123},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseAmountErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "12,345"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) should fail", in)
		}
	}
}

func TestFindHeaderSkipsPreamble(t *testing.T) {
	lines := []string{
		"Kontoutdrag för konto 1234-5678",
		"Period: 2025-08-01 - 2025-08-31",
		"",
		"Datum;Beskrivning;Belopp;Kategori;Underkategori",
		"2025-08-05;ICA Maxi;-1 250,50;Mat och dryck;Livsmedel",
	}

	idx, delim, err := FindHeader(lines)
	if err != nil {
		t.Fatalf("FindHeader failed: %v", err)
	}
	if idx != 3 {
		t.Errorf("Expected header at line 3, got %d", idx)
	}
	if delim != ';' {
		t.Errorf("Expected ';' delimiter, got %q", delim)
	}
}

func TestFindHeaderNoHeader(t *testing.T) {
	if _, _, err := FindHeader([]string{"a;b;c", "1;2;3"}); err == nil {
		t.Error("Expected error when no known column name is present")
	}
}

func TestParseStatement(t *testing.T) {
	text := "Kontoutdrag\n" +
		"Datum;Beskrivning;Belopp;Kategori;Underkategori\n" +
		"2025-08-05;ICA Maxi;-1 250,50;Mat och dryck;Livsmedel\n" +
		"2025-08-25;Lön;35 000,00;Inkomst;Lön\n" +
		"\n" +
		"ogiltigt datum;Skräp;12,00;;\n"

	result, err := Parse(text, swedbankMapping)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(result.Rows))
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped row, got %d", result.Skipped)
	}

	first := result.Rows[0]
	if first.Date != "2025-08-05" {
		t.Errorf("Expected date 2025-08-05, got %s", first.Date)
	}
	if first.AmountOre != -125050 {
		t.Errorf("Expected amount -125050 öre, got %d", first.AmountOre)
	}
	if first.BankCategory != "Mat och dryck" || first.BankSubCategory != "Livsmedel" {
		t.Errorf("Unexpected categories: %q / %q", first.BankCategory, first.BankSubCategory)
	}

	second := result.Rows[1]
	if second.AmountOre != 3500000 {
		t.Errorf("Expected amount 3500000 öre, got %d", second.AmountOre)
	}
}

func TestParseCommaDelimited(t *testing.T) {
	text := "Datum,Beskrivning,Belopp\n" +
		"2025-08-05,\"Willys, Göteborg\",-99.50\n"

	mapping := models.BankCsvMapping{
		DateColumn:        "Datum",
		DescriptionColumn: "Beskrivning",
		AmountColumn:      "Belopp",
	}

	result, err := Parse(text, mapping)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].Description != "Willys, Göteborg" {
		t.Errorf("Quoted field mangled: %q", result.Rows[0].Description)
	}
	if result.Rows[0].AmountOre != -9950 {
		t.Errorf("Expected -9950 öre, got %d", result.Rows[0].AmountOre)
	}
}

func TestParseMissingMappedColumn(t *testing.T) {
	text := "Datum;Text;Belopp\n2025-08-05;x;1,00\n"

	if _, err := Parse(text, swedbankMapping); err == nil {
		t.Error("Expected error when mapped description column is missing")
	}
}
