package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

const historySheet = "History"

var historyHeadings = []string{
	"MRN", "Submitted At", "Requested By", "Department",
	"Required Date", "Item", "Qty", "Unit", "Note",
}

// WriteHistory renders the given history rows as an .xlsx workbook.
// Zero timestamps and dates are written as blank cells.
func WriteHistory(rows []services.HistoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(0), historySheet); err != nil {
		return nil, fmt.Errorf("name history sheet: %w", err)
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeadings); err != nil {
		return nil, fmt.Errorf("write headings: %w", err)
	}

	for i, row := range rows {
		record := []any{
			row.MRN,
			formatOrBlank(row.SubmittedAt, models.TimestampLayout),
			row.RequestedBy,
			row.Department,
			formatOrBlank(row.RequiredDate, models.RequiredDateLayout),
			row.Item,
			row.Qty.String(),
			row.Unit,
			row.Note,
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(historySheet, axis, &record); err != nil {
			return nil, fmt.Errorf("write history row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize history workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatOrBlank(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
