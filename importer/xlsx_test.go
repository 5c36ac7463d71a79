package importer

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"familjebudget/backend/models"
)

func buildTestWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Kontoutdrag"},
		{"Datum", "Beskrivning", "Belopp", "Kategori"},
		{"2025-08-05", "ICA Maxi", "-1 250,50", "Mat och dryck"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIsXLSX(t *testing.T) {
	if !IsXLSX("export.xlsx", nil) {
		t.Error("Expected .xlsx extension to be detected")
	}
	if !IsXLSX("export.csv", []byte{'P', 'K', 0x03, 0x04, 0x00}) {
		t.Error("Expected zip magic bytes to be detected")
	}
	if IsXLSX("export.csv", []byte("Datum;Belopp")) {
		t.Error("Plain CSV misdetected as XLSX")
	}
}

func TestXLSXToCSVAndParse(t *testing.T) {
	data := buildTestWorkbook(t)

	text, err := StatementText("export.xlsx", data)
	if err != nil {
		t.Fatalf("StatementText failed: %v", err)
	}

	mapping := models.BankCsvMapping{
		DateColumn:        "Datum",
		DescriptionColumn: "Beskrivning",
		AmountColumn:      "Belopp",
		CategoryColumn:    "Kategori",
	}

	result, err := Parse(text, mapping)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row.Date != "2025-08-05" || row.AmountOre != -125050 || row.BankCategory != "Mat och dryck" {
		t.Errorf("Unexpected row: %+v", row)
	}
}
