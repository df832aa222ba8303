package spreadsheet_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/indentd/services/indent/domain/models"
	"github.com/ghuser/indentd/services/indent/infrastructure/spreadsheet"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestReadReferenceItems(t *testing.T) {
	r := buildWorkbook(t, [][]any{
		{"Item Name", "Unit", "Departments", "Category", "Sub-Category"},
		{"Basmati Rice", "kg", "Kitchen", "Groceries", "Grains"},
		{"Lime", "pc", "Kitchen, Bar", "Beverages", "Garnish"},
		{"", "", "", "", ""},
		{"Mystery Powder", "", "", "", ""},
	})

	items, err := spreadsheet.ReadReferenceItems(r)
	if err != nil {
		t.Fatalf("ReadReferenceItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	if items[0].Name != "Basmati Rice" || items[0].Unit != "kg" || items[0].Category != "Groceries" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if len(items[1].Departments) != 2 || items[1].Departments[1] != "Bar" {
		t.Errorf("departments = %v, want [Kitchen Bar]", items[1].Departments)
	}
	// Blank optional cells take the model defaults.
	last := items[2]
	if last.Unit != "N/A" || last.Category != models.DefaultCategory || last.SubCategory != models.DefaultSubCategory {
		t.Errorf("defaults not applied: %+v", last)
	}
}

func TestReadReferenceItems_noHeaderRow(t *testing.T) {
	r := buildWorkbook(t, [][]any{
		{"Salt", "kg"},
		{"Sugar", "kg"},
	})
	items, err := spreadsheet.ReadReferenceItems(r)
	if err != nil {
		t.Fatalf("ReadReferenceItems: %v", err)
	}
	// First row does not look like a header, so it is data.
	if len(items) != 2 || items[0].Name != "Salt" {
		t.Errorf("items = %+v", items)
	}
}

func TestReadReferenceItems_notAWorkbook(t *testing.T) {
	if _, err := spreadsheet.ReadReferenceItems(bytes.NewReader([]byte("not xlsx"))); err == nil {
		t.Fatal("expected error for a non-workbook payload")
	}
}
