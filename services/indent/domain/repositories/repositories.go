package repositories

import (
	"context"

	"github.com/ghuser/indentd/services/indent/domain/models"
)

// IndentLog is the persistence interface for the append-only indent log.
// The domain layer owns this interface; infrastructure implements it.
type IndentLog interface {
	// RequestColumn returns every request-id cell in insertion order, oldest
	// first, including blanks and malformed entries. The allocator scans it.
	RequestColumn(ctx context.Context) ([]string, error)

	// AppendLines persists all of the indent's log rows in one batch.
	// All-or-nothing: on error no row has been written.
	AppendLines(ctx context.Context, indent *models.Indent) error

	// AllLines returns every raw log row in insertion order.
	AllLines(ctx context.Context) ([]models.LogLine, error)

	// LinesByMRN returns the raw log rows for one request.
	// Returns ErrIndentNotFound when no row matches.
	LinesByMRN(ctx context.Context, mrn string) ([]models.LogLine, error)
}

// ReferenceRepo is the persistence interface for the item reference dataset.
type ReferenceRepo interface {
	// All returns every reference item.
	All(ctx context.Context) ([]models.ReferenceItem, error)

	// ReplaceAll swaps the whole dataset in one transaction (import flow).
	ReplaceAll(ctx context.Context, items []models.ReferenceItem) error
}
