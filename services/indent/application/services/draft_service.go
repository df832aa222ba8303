package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"
	domainsvcs "github.com/ghuser/indentd/services/indent/domain/services"
)

// maxRowsPerAdd caps a single add-rows request; the form is bounded by a
// handful of rows, not bulk entry.
const maxRowsPerAdd = 20

// DraftService owns every mutation of the session's draft view-model. Each
// operation mutates the draft in place; the caller persists the draft back to
// the session afterwards.
type DraftService struct {
	reference *ReferenceService
	now       func() time.Time
}

// NewDraftService returns a DraftService resolving items via the given
// reference service.
func NewDraftService(reference *ReferenceService) *DraftService {
	return &DraftService{reference: reference, now: time.Now}
}

// AddRows appends n blank rows (1..maxRowsPerAdd).
func (s *DraftService) AddRows(d *models.Draft, n int) error {
	if n < 1 || n > maxRowsPerAdd {
		return fmt.Errorf("row count must be between 1 and %d", maxRowsPerAdd)
	}
	d.AddRows(n)
	return nil
}

// RemoveRow deletes the row with the given id. The draft re-appends a blank
// row itself if the removal would empty it.
func (s *DraftService) RemoveRow(d *models.Draft, id uuid.UUID) error {
	if !d.RemoveRow(id) {
		return indentdomain.ErrRowNotFound
	}
	return nil
}

// Clear resets the draft to a single blank row, keeping header fields.
func (s *DraftService) Clear(d *models.Draft) {
	d.Clear()
}

// SetItem resolves itemName against the reference dataset and derives the
// row's unit, category, and sub-category. An empty name clears the row's
// selection; an unknown name is an error and leaves the row untouched.
func (s *DraftService) SetItem(ctx context.Context, d *models.Draft, id uuid.UUID, itemName string) error {
	row := d.Row(id)
	if row == nil {
		return indentdomain.ErrRowNotFound
	}
	if strings.TrimSpace(itemName) == "" {
		row.Resolve(nil)
		return nil
	}
	ref, err := s.reference.Lookup(ctx, itemName)
	if err != nil {
		return err
	}
	row.Resolve(ref)
	return nil
}

// SetQuantity updates one row's quantity; it must be positive.
func (s *DraftService) SetQuantity(d *models.Draft, id uuid.UUID, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return indentdomain.ErrInvalidQuantity
	}
	if !d.SetQuantity(id, qty) {
		return indentdomain.ErrRowNotFound
	}
	return nil
}

// SetNote updates one row's note.
func (s *DraftService) SetNote(d *models.Draft, id uuid.UUID, note string) error {
	if !d.SetNote(id, note) {
		return indentdomain.ErrRowNotFound
	}
	return nil
}

// SetDepartment switches departments, clearing every row: the permitted item
// set changes with the department, so previous selections are discarded
// rather than partially re-validated.
func (s *DraftService) SetDepartment(d *models.Draft, department string) error {
	if department != "" && !models.IsValidDepartment(department) {
		return fmt.Errorf("%w: %q", indentdomain.ErrInvalidDepartment, department)
	}
	if department == d.Department {
		return nil
	}
	d.SetDepartment(department)
	return nil
}

// SetRequiredDate parses and stores the required date (DD-MM-YYYY). Past
// dates are rejected at entry as well as at submit.
func (s *DraftService) SetRequiredDate(d *models.Draft, date string) error {
	if date == "" {
		d.RequiredDate = ""
		return nil
	}
	due, err := time.Parse(models.RequiredDateLayout, date)
	if err != nil {
		return fmt.Errorf("parse required date %q: %w", date, err)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		return indentdomain.ErrPastRequiredDate
	}
	d.RequiredDate = date
	return nil
}

// SetRequestedBy stores the requester name.
func (s *DraftService) SetRequestedBy(d *models.Draft, name string) {
	d.RequestedBy = strings.TrimSpace(name)
}

// Validity recomputes the submit gate for the current draft state.
func (s *DraftService) Validity(d *models.Draft) domainsvcs.Validity {
	return domainsvcs.ComputeValidity(d)
}
