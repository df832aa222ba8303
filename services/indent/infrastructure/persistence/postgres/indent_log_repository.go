package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/indentd/pkg/database"
	"github.com/ghuser/indentd/pkg/events"
	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	domainevents "github.com/ghuser/indentd/services/indent/domain/events"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// IndentLogRepository implements repositories.IndentLog against PostgreSQL.
//
// The indent_log table mirrors the external tabular log it replaces: every
// cell is TEXT and row order is the serial insertion order. The weakly-typed
// shape is part of the store's contract (rows may be appended or edited by
// other tools), so typing is deferred to read time.
type IndentLogRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewIndentLogRepository returns an IndentLogRepository backed by the given
// connection pool and event bus. The bus is used to publish an
// IndentSubmittedEvent in the same transaction as the batch append.
func NewIndentLogRepository(db *database.Database, bus *events.EventBus) *IndentLogRepository {
	return &IndentLogRepository{db: db, bus: bus}
}

// RequestColumn returns every mrn cell in insertion order, blanks included.
func (r *IndentLogRepository) RequestColumn(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT mrn FROM indent_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query request column: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var column []string
	for rows.Next() {
		var mrn sql.NullString
		if err := rows.Scan(&mrn); err != nil {
			return nil, fmt.Errorf("scan request column: %w", err)
		}
		column = append(column, mrn.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request column: %w", err)
	}
	return column, nil
}

// AppendLines persists all of the indent's log rows and publishes the
// submitted event within one transaction. All-or-nothing by construction.
func (r *IndentLogRepository) AppendLines(ctx context.Context, indent *models.Indent) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO indent_log (mrn, ts, requested_by, department, required_date, item, qty, unit, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close() //nolint:errcheck

		for _, l := range indent.LogLines() {
			if _, err := stmt.ExecContext(ctx,
				l.MRN, l.Timestamp, l.RequestedBy, l.Department,
				l.RequiredDate, l.Item, l.Qty, l.Unit, l.Note,
			); err != nil {
				return fmt.Errorf("insert log line: %w", err)
			}
		}

		if r.bus != nil {
			if err := r.publishSubmitted(tx, indent); err != nil {
				return fmt.Errorf("publish indent submitted: %w", err)
			}
		}
		return nil
	})
}

// AllLines returns every raw log row in insertion order.
func (r *IndentLogRepository) AllLines(ctx context.Context) ([]models.LogLine, error) {
	return r.queryLines(ctx, `
		SELECT mrn, ts, requested_by, department, required_date, item, qty, unit, note
		FROM indent_log ORDER BY id`)
}

// LinesByMRN returns the raw rows for one request, or ErrIndentNotFound.
func (r *IndentLogRepository) LinesByMRN(ctx context.Context, mrn string) ([]models.LogLine, error) {
	lines, err := r.queryLines(ctx, `
		SELECT mrn, ts, requested_by, department, required_date, item, qty, unit, note
		FROM indent_log WHERE mrn = $1 ORDER BY id`, mrn)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", indentdomain.ErrIndentNotFound, mrn)
	}
	return lines, nil
}

func (r *IndentLogRepository) queryLines(ctx context.Context, query string, args ...any) ([]models.LogLine, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query log lines: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var lines []models.LogLine
	for rows.Next() {
		var l models.LogLine
		var cells [9]sql.NullString
		if err := rows.Scan(&cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5], &cells[6], &cells[7], &cells[8]); err != nil {
			return nil, fmt.Errorf("scan log line: %w", err)
		}
		l.MRN, l.Timestamp, l.RequestedBy = cells[0].String, cells[1].String, cells[2].String
		l.Department, l.RequiredDate, l.Item = cells[3].String, cells[4].String, cells[5].String
		l.Qty, l.Unit, l.Note = cells[6].String, cells[7].String, cells[8].String
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log lines: %w", err)
	}
	return lines, nil
}

func (r *IndentLogRepository) publishSubmitted(tx *sql.Tx, indent *models.Indent) error {
	event := domainevents.IndentSubmittedEvent{
		EventID:     uuid.New(),
		Version:     1,
		MRN:         indent.MRN,
		Department:  indent.Department,
		RequestedBy: indent.RequestedBy,
		LineCount:   len(indent.Lines),
		OccurredAt:  indent.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicIndentSubmitted, msg)
}
