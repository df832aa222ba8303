// Package services contains stateless domain services for the indent bounded
// context: submit-gating checks that operate purely on domain types.
package services

import (
	"sort"
	"time"

	"github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// Validity is the answer to "is this draft submittable right now?".
type Validity struct {
	HasDuplicates  bool
	DuplicateNames []string
	HasValidLine   bool
}

// ComputeValidity checks the draft's line-item collection. A valid line has a
// selected item, a positive quantity, and a resolved unit. Duplicate detection
// is a frequency count over the selected item names; the match is
// case-sensitive exact, so "Salt" and "salt" are distinct items.
func ComputeValidity(d *models.Draft) Validity {
	counts := make(map[string]int)
	for _, name := range d.SelectedItemNames() {
		counts[name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)

	hasValid := false
	for _, row := range d.Rows {
		if row.IsValid() {
			hasValid = true
			break
		}
	}

	return Validity{
		HasDuplicates:  len(dups) > 0,
		DuplicateNames: dups,
		HasValidLine:   hasValid,
	}
}

// CheckSubmittable returns the first gating error preventing submission, or
// nil if the draft may be submitted. The same check runs when the form is
// rendered (to disable the submit action) and again immediately before the
// write, guarding against stale form state.
func CheckSubmittable(d *models.Draft, today time.Time) error {
	v := ComputeValidity(d)
	if !v.HasValidLine {
		return domain.ErrNoValidLines
	}
	if v.HasDuplicates {
		return domain.ErrDuplicateItems
	}
	if d.Department == "" {
		return domain.ErrDepartmentRequired
	}
	if d.RequestedBy == "" {
		return domain.ErrRequesterRequired
	}
	if d.RequiredDate != "" {
		due, err := time.Parse(models.RequiredDateLayout, d.RequiredDate)
		if err != nil {
			return domain.ErrPastRequiredDate
		}
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if due.Before(day) {
			return domain.ErrPastRequiredDate
		}
	}
	return nil
}
