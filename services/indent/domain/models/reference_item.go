package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category and sub-category defaults applied when the reference dataset leaves
// them blank.
const (
	DefaultCategory    = "Uncategorized"
	DefaultSubCategory = "General"
)

// AllDepartments is the reference-dataset keyword granting an item to every department.
const AllDepartments = "all"

// ReferenceItem is one row of the read-only item reference dataset. Loaded
// once per session (with a bounded-staleness cache) and immutable after load.
type ReferenceItem struct {
	Name        string
	Unit        string
	Category    string
	SubCategory string
	// Departments lists the departments permitted to request this item.
	// A single "all" entry (or an empty list) permits every department.
	Departments []string
	// BaseUnit and ConversionFactor are optional; a zero factor means unset.
	BaseUnit         string
	ConversionFactor decimal.Decimal
}

// NewReferenceItem normalizes a raw reference row: names are trimmed, a blank
// unit becomes "N/A", and blank category fields take their defaults.
func NewReferenceItem(name, unit, category, subCategory string, departments []string) ReferenceItem {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "N/A"
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	subCategory = strings.TrimSpace(subCategory)
	if subCategory == "" {
		subCategory = DefaultSubCategory
	}
	cleaned := make([]string, 0, len(departments))
	for _, d := range departments {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	return ReferenceItem{
		Name:        strings.TrimSpace(name),
		Unit:        unit,
		Category:    category,
		SubCategory: subCategory,
		Departments: cleaned,
	}
}

// PermittedFor reports whether the item may be requested by the given department.
func (r ReferenceItem) PermittedFor(department string) bool {
	if len(r.Departments) == 0 {
		return true
	}
	for _, d := range r.Departments {
		if strings.EqualFold(d, AllDepartments) || strings.EqualFold(d, department) {
			return true
		}
	}
	return false
}
