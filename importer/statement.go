// Package importer turns bank statement exports (CSV or XLSX) into
// typed rows. The XLSX adapter first flattens the workbook to
// semicolon-delimited text so both formats go through the same parse
// path: locate the header row, resolve the bank's column mapping to
// indexes, then read one transaction per line.
package importer

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"familjebudget/backend/models"
)

// StatementRow is one parsed statement line. AmountOre is in öre.
type StatementRow struct {
	Date            string `json:"date"`
	Description     string `json:"description"`
	AmountOre       int64  `json:"amount"`
	BankCategory    string `json:"bankCategory,omitempty"`
	BankSubCategory string `json:"bankSubCategory,omitempty"`
}

// ParseResult carries the parsed rows plus how many lines were
// skipped because date or amount would not parse.
type ParseResult struct {
	Rows    []StatementRow `json:"rows"`
	Skipped int            `json:"skipped"`
}

// Header names seen in Swedish bank exports. A line containing any of
// these is taken as the header row; banks pad their exports with
// preamble lines so a fixed row index cannot be trusted.
var knownHeaderNames = []string{
	"Datum", "Transaktionsdatum", "Bokföringsdag",
	"Kategori", "Underkategori",
	"Belopp", "Beskrivning", "Text", "Rubrik",
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006/01/02",
	"02.01.2006",
}

// FindHeader scans lines for the first one mentioning a known column
// name and returns its index and the delimiter that splits it.
func FindHeader(lines []string) (int, rune, error) {
	for i, line := range lines {
		for _, name := range knownHeaderNames {
			if strings.Contains(line, name) {
				return i, detectDelimiter(line), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("no header row found, expected a line with one of %v", knownHeaderNames)
}

func detectDelimiter(headerLine string) rune {
	if strings.Contains(headerLine, ";") {
		return ';'
	}
	if strings.Contains(headerLine, "\t") {
		return '\t'
	}
	return ','
}

// Parse reads delimited statement text using a bank's column mapping.
// Lines before the header are ignored; rows whose date or amount does
// not parse are skipped and counted, not fatal.
func Parse(text string, mapping models.BankCsvMapping) (ParseResult, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	headerIdx, delim, err := FindHeader(lines)
	if err != nil {
		return ParseResult{}, err
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return ParseResult{}, fmt.Errorf("read statement: %w", err)
	}
	if len(records) == 0 {
		return ParseResult{}, fmt.Errorf("statement has no header row")
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	cols, err := resolveColumns(header, mapping)
	if err != nil {
		return ParseResult{}, err
	}

	var result ParseResult
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row, ok := parseRecord(rec, cols)
		if !ok {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// columnIndexes maps the mapping's semantic fields to positions in
// the header row. -1 means the field is not mapped.
type columnIndexes struct {
	date        int
	description int
	amount      int
	category    int
	subCategory int
}

func resolveColumns(header []string, mapping models.BankCsvMapping) (columnIndexes, error) {
	cols := columnIndexes{
		date:        indexOf(header, mapping.DateColumn),
		description: indexOf(header, mapping.DescriptionColumn),
		amount:      indexOf(header, mapping.AmountColumn),
		category:    indexOf(header, mapping.CategoryColumn),
		subCategory: indexOf(header, mapping.SubCategoryColumn),
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("date column %q not found in header", mapping.DateColumn)
	}
	if cols.description < 0 {
		return cols, fmt.Errorf("description column %q not found in header", mapping.DescriptionColumn)
	}
	if cols.amount < 0 {
		return cols, fmt.Errorf("amount column %q not found in header", mapping.AmountColumn)
	}
	return cols, nil
}

func indexOf(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func parseRecord(rec []string, cols columnIndexes) (StatementRow, bool) {
	date, err := parseDate(field(rec, cols.date))
	if err != nil {
		return StatementRow{}, false
	}
	amount, err := ParseAmount(field(rec, cols.amount))
	if err != nil {
		return StatementRow{}, false
	}
	return StatementRow{
		Date:            date,
		Description:     field(rec, cols.description),
		AmountOre:       amount,
		BankCategory:    field(rec, cols.category),
		BankSubCategory: field(rec, cols.subCategory),
	}, true
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseDate normalizes a statement date to "2006-01-02".
func parseDate(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}
