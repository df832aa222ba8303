package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IndentLine is one submitted line of an indent request.
type IndentLine struct {
	ItemName    string
	Quantity    decimal.Decimal
	Unit        string
	Note        string
	Category    string
	SubCategory string
}

// Indent is one submitted material request: immutable after construction,
// persisted to the log store as one row per line.
type Indent struct {
	MRN          string
	CreatedAt    time.Time
	Department   string
	RequiredDate string // DD-MM-YYYY
	RequestedBy  string
	Lines        []IndentLine
}

// NewIndent assembles an immutable Indent from already-validated lines,
// sorted by (category, sub-category, item name) ascending, case-insensitive.
// The sort is purely presentational: it gives the log and the rendered
// document a stable grouping order.
func NewIndent(mrn, department, requiredDate, requestedBy string, createdAt time.Time, lines []IndentLine) *Indent {
	sorted := make([]IndentLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category)); c != 0 {
			return c < 0
		}
		if c := strings.Compare(strings.ToLower(a.SubCategory), strings.ToLower(b.SubCategory)); c != 0 {
			return c < 0
		}
		return strings.ToLower(a.ItemName) < strings.ToLower(b.ItemName)
	})

	return &Indent{
		MRN:          mrn,
		CreatedAt:    createdAt,
		Department:   department,
		RequiredDate: requiredDate,
		RequestedBy:  requestedBy,
		Lines:        sorted,
	}
}

// TotalQuantity sums all line quantities (for the post-submission summary).
func (in *Indent) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, l := range in.Lines {
		total = total.Add(l.Quantity)
	}
	return total
}

// LogLine is one raw row of the indent log exactly as stored: every cell is a
// string because the log is a weakly-typed tabular store that outlives this
// program and may be edited externally. Typed reconstruction happens at read
// time in the history view.
type LogLine struct {
	MRN          string
	Timestamp    string
	RequestedBy  string
	Department   string
	RequiredDate string
	Item         string
	Qty          string
	Unit         string
	Note         string
}

// LogLines flattens the indent into log rows, one per line item. Blank notes
// are stored as "N/A".
func (in *Indent) LogLines() []LogLine {
	rows := make([]LogLine, len(in.Lines))
	for i, l := range in.Lines {
		note := l.Note
		if note == "" {
			note = "N/A"
		}
		rows[i] = LogLine{
			MRN:          in.MRN,
			Timestamp:    in.CreatedAt.Format(TimestampLayout),
			RequestedBy:  in.RequestedBy,
			Department:   in.Department,
			RequiredDate: in.RequiredDate,
			Item:         l.ItemName,
			Qty:          l.Quantity.String(),
			Unit:         l.Unit,
			Note:         note,
		}
	}
	return rows
}
