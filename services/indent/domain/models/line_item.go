package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitPlaceholder is shown for rows whose item has not been selected or resolved.
const UnitPlaceholder = "-"

// LineItem is one editable row of a draft: the material, how much of it, and
// an optional note. Unit, category, and sub-category are always derived from
// the item name via the reference dataset — never edited independently.
type LineItem struct {
	ID          uuid.UUID
	ItemName    string
	Quantity    decimal.Decimal
	Note        string
	Unit        string
	Category    string
	SubCategory string
}

// NewBlankLine returns a fresh empty row with quantity 1 and placeholder unit.
func NewBlankLine() LineItem {
	return LineItem{
		ID:       uuid.New(),
		Quantity: decimal.NewFromInt(1),
		Unit:     UnitPlaceholder,
	}
}

// Resolve derives the unit and category fields from the given reference item,
// or resets them to placeholders when ref is nil (item cleared or unknown).
func (l *LineItem) Resolve(ref *ReferenceItem) {
	if ref == nil {
		l.ItemName = ""
		l.Unit = UnitPlaceholder
		l.Category = ""
		l.SubCategory = ""
		return
	}
	l.ItemName = ref.Name
	l.Unit = ref.Unit
	l.Category = ref.Category
	l.SubCategory = ref.SubCategory
}

// IsValid reports whether the row is submittable: an item is selected, the
// quantity is positive, and a real unit has been resolved.
func (l LineItem) IsValid() bool {
	return l.ItemName != "" && l.Quantity.IsPositive() && l.Unit != UnitPlaceholder
}
