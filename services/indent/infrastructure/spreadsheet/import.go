// Package spreadsheet reads and writes the .xlsx workbooks the indent system
// exchanges with the outside world: the reference-dataset import and the
// history export.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ghuser/indentd/services/indent/domain/models"
)

// Reference import column order. Only the first two are required; the rest
// fall back to the model defaults when absent or blank.
const (
	colName = iota
	colUnit
	colDepartments
	colCategory
	colSubCategory
	colBaseUnit
	colConversionFactor
)

// ReadReferenceItems parses a reference workbook from r. The first sheet is
// used. A header row is skipped when its first two cells mention "item" and
// "unit"; fully blank rows are skipped. Malformed optional cells degrade to
// defaults rather than failing the import.
func ReadReferenceItems(r io.Reader) ([]models.ReferenceItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("reference workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var items []models.ReferenceItem
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		name := cell(row, colName)
		if name == "" {
			continue
		}
		item := models.NewReferenceItem(
			name,
			cell(row, colUnit),
			cell(row, colCategory),
			cell(row, colSubCategory),
			splitDepartments(cell(row, colDepartments)),
		)
		item.BaseUnit = cell(row, colBaseUnit)
		item.ConversionFactor = parseFactor(cell(row, colConversionFactor))
		items = append(items, item)
	}
	return items, nil
}

func isHeaderRow(row []string) bool {
	return strings.Contains(strings.ToLower(cell(row, colName)), "item") &&
		strings.Contains(strings.ToLower(cell(row, colUnit)), "unit")
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitDepartments(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFactor(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return d
}
