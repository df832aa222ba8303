package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire formats shared between the draft, the log store, and the rendered document.
const (
	// RequiredDateLayout is the DD-MM-YYYY format the log store uses.
	RequiredDateLayout = "02-01-2006"
	// TimestampLayout is the submission timestamp format in the log store.
	TimestampLayout = "2006-01-02 15:04:05"
)

// DefaultDraftRows is the number of blank rows a fresh draft starts with.
const DefaultDraftRows = 5

// Draft is the per-session material-indent form state: header fields plus the
// ordered collection of line-item rows being edited. It is mutated only
// through the methods below; the row collection is never left empty.
type Draft struct {
	Department   string
	RequiredDate string // DD-MM-YYYY, empty until chosen
	RequestedBy  string
	Rows         []LineItem
}

// NewDraft returns a draft with DefaultDraftRows blank rows and the given
// department pre-selected (the session's last-used department, or empty).
func NewDraft(department string) *Draft {
	d := &Draft{Department: department}
	d.AddRows(DefaultDraftRows)
	return d
}

// AddRows appends n blank rows with fresh ids.
func (d *Draft) AddRows(n int) {
	for range n {
		d.Rows = append(d.Rows, NewBlankLine())
	}
}

// RemoveRow deletes the row with the given id. If that leaves the collection
// empty, one blank row is appended immediately: the form always shows at
// least one row.
func (d *Draft) RemoveRow(id uuid.UUID) bool {
	for i, row := range d.Rows {
		if row.ID == id {
			d.Rows = append(d.Rows[:i], d.Rows[i+1:]...)
			if len(d.Rows) == 0 {
				d.AddRows(1)
			}
			return true
		}
	}
	return false
}

// Clear replaces the entire collection with exactly one blank row. Header
// fields are kept so the requester does not re-enter them.
func (d *Draft) Clear() {
	d.Rows = nil
	d.AddRows(1)
}

// Row returns a pointer to the row with the given id, or nil.
func (d *Draft) Row(id uuid.UUID) *LineItem {
	for i := range d.Rows {
		if d.Rows[i].ID == id {
			return &d.Rows[i]
		}
	}
	return nil
}

// SetQuantity updates one row's quantity. No other row is touched.
func (d *Draft) SetQuantity(id uuid.UUID, qty decimal.Decimal) bool {
	row := d.Row(id)
	if row == nil {
		return false
	}
	row.Quantity = qty
	return true
}

// SetNote updates one row's note. No other row is touched.
func (d *Draft) SetNote(id uuid.UUID, note string) bool {
	row := d.Row(id)
	if row == nil {
		return false
	}
	row.Note = note
	return true
}

// SetDepartment switches the draft to a new department and resets every row's
// item, unit, category, and note. Items selected under the old department are
// not guaranteed permitted under the new one, so all rows are cleared rather
// than partially re-validated.
func (d *Draft) SetDepartment(department string) {
	d.Department = department
	for i := range d.Rows {
		d.Rows[i].Resolve(nil)
		d.Rows[i].Note = ""
		d.Rows[i].Quantity = decimal.NewFromInt(1)
	}
}

// SelectedItemNames returns the non-empty item names in row order,
// including repeats.
func (d *Draft) SelectedItemNames() []string {
	names := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		if row.ItemName != "" {
			names = append(names, row.ItemName)
		}
	}
	return names
}
