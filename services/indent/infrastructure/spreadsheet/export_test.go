package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ghuser/indentd/services/indent/application/services"
	"github.com/ghuser/indentd/services/indent/infrastructure/spreadsheet"
)

func TestWriteHistory(t *testing.T) {
	rows := []services.HistoryRow{
		{
			MRN:          "MRN-001",
			SubmittedAt:  time.Date(2026, 8, 30, 14, 2, 11, 0, time.UTC),
			RequestedBy:  "A. Sharma",
			Department:   "Kitchen",
			RequiredDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			Item:         "Basmati Rice",
			Qty:          decimal.RequireFromString("2.5"),
			Unit:         "kg",
			Note:         "for banquet",
		},
		{MRN: "MRN-002", Item: "Salt", Qty: decimal.Zero, Unit: "kg"},
	}

	payload, err := spreadsheet.WriteHistory(rows)
	if err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("exported payload is not a workbook: %v", err)
	}
	defer f.Close() //nolint:errcheck

	got, err := f.GetRows("History")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(got))
	}
	if got[0][0] != "MRN" {
		t.Errorf("header[0] = %q", got[0][0])
	}
	if got[1][0] != "MRN-001" || got[1][1] != "2026-08-30 14:02:11" || got[1][4] != "02-09-2026" {
		t.Errorf("row 1 = %v", got[1])
	}
	// Zero timestamps export as blank, not the zero time.
	if len(got[2]) > 1 && got[2][1] != "" {
		t.Errorf("zero timestamp exported as %q", got[2][1])
	}
}

func TestWriteHistory_empty(t *testing.T) {
	payload, err := spreadsheet.WriteHistory(nil)
	if err != nil {
		t.Fatalf("WriteHistory(nil): %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("empty export is not a workbook: %v", err)
	}
	defer f.Close() //nolint:errcheck
	rows, err := f.GetRows("History")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
