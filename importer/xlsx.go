package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// IsXLSX reports whether an uploaded statement is an Excel workbook,
// by file extension or the zip magic bytes.
func IsXLSX(filename string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return true
	}
	return bytes.HasPrefix(data, zipMagic)
}

// XLSXToCSV flattens the first sheet of a workbook to
// semicolon-delimited text, so XLSX exports and CSV exports share one
// parse path.
func XLSXToCSV(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read xlsx rows: %w", err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// StatementText returns the delimited text form of an uploaded file,
// converting XLSX to CSV when needed.
func StatementText(filename string, data []byte) (string, error) {
	if IsXLSX(filename, data) {
		return XLSXToCSV(data)
	}
	return string(data), nil
}
