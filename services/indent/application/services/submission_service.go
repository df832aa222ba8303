package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/indentd/pkg/logger"
	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"
	domainsvcs "github.com/ghuser/indentd/services/indent/domain/services"
	"github.com/ghuser/indentd/services/indent/domain/repositories"
)

// SubmissionService turns a validated draft into a persisted indent request:
// re-validate, allocate the request number, stamp, sort, and append the log
// rows in one batch. Event publishing rides the repository transaction.
type SubmissionService struct {
	log       repositories.IndentLog
	reference *ReferenceService
	logger    logger.Logger
	now       func() time.Time
}

// NewSubmissionService wires the submission flow.
func NewSubmissionService(log repositories.IndentLog, reference *ReferenceService, lg logger.Logger) *SubmissionService {
	return &SubmissionService{log: log, reference: reference, logger: lg, now: time.Now}
}

// AllocateMRN derives the next request number by scanning the log's id
// column. A log read failure yields the time-stamped error sentinel instead
// of an error: the identifier itself signals "do not submit".
func (s *SubmissionService) AllocateMRN(ctx context.Context) string {
	column, err := s.log.RequestColumn(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "request column read failed, issuing error sentinel", "error", err)
		return models.ErrorMRN(s.now())
	}
	return models.NextMRN(column)
}

// Submit runs the full submission flow against the given draft. On success
// the returned Indent carries the allocated MRN and the presentation-sorted
// lines; the draft itself is untouched so the caller can reset it only after
// the write is known to have succeeded. On any failure the draft and the log
// are both unchanged.
func (s *SubmissionService) Submit(ctx context.Context, d *models.Draft) (*models.Indent, error) {
	// The submit action is gated in the UI, but the gate is re-checked here
	// against stale form state.
	if err := domainsvcs.CheckSubmittable(d, s.now()); err != nil {
		return nil, err
	}

	lines, err := s.collectLines(ctx, d)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, indentdomain.ErrNoValidLines
	}

	mrn := s.AllocateMRN(ctx)
	if models.IsErrorMRN(mrn) {
		return nil, fmt.Errorf("%w: %s", indentdomain.ErrAllocatorUnavailable, mrn)
	}

	requiredDate := d.RequiredDate
	if requiredDate == "" {
		requiredDate = s.now().Format(models.RequiredDateLayout)
	}
	indent := models.NewIndent(mrn, d.Department, requiredDate, d.RequestedBy, s.now(), lines)

	if err := s.log.AppendLines(ctx, indent); err != nil {
		return nil, fmt.Errorf("append indent %s: %w", mrn, err)
	}

	s.logger.InfoContext(ctx, "indent submitted",
		"mrn", indent.MRN,
		"department", indent.Department,
		"lines", len(indent.Lines),
	)
	return indent, nil
}

// collectLines gathers the submittable rows, re-deriving each unit and
// category from the reference dataset so the persisted values cannot drift
// from a stale draft.
func (s *SubmissionService) collectLines(ctx context.Context, d *models.Draft) ([]models.IndentLine, error) {
	lines := make([]models.IndentLine, 0, len(d.Rows))
	for _, row := range d.Rows {
		if row.ItemName == "" || !row.Quantity.IsPositive() {
			continue
		}
		line := models.IndentLine{
			ItemName:    row.ItemName,
			Quantity:    row.Quantity,
			Note:        row.Note,
			Unit:        row.Unit,
			Category:    row.Category,
			SubCategory: row.SubCategory,
		}
		if ref, err := s.reference.Lookup(ctx, row.ItemName); err == nil {
			line.ItemName = ref.Name
			line.Unit = ref.Unit
			line.Category = ref.Category
			line.SubCategory = ref.SubCategory
		} else if line.Unit == models.UnitPlaceholder {
			// Row was never resolved and the item is unknown; not submittable.
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
