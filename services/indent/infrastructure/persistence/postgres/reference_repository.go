package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ghuser/indentd/pkg/database"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

// ReferenceRepository implements repositories.ReferenceRepo against PostgreSQL.
type ReferenceRepository struct {
	db *database.Database
}

func NewReferenceRepository(db *database.Database) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// All returns the reference dataset ordered by item name.
func (r *ReferenceRepository) All(ctx context.Context) ([]models.ReferenceItem, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT name, unit, category, sub_category, departments, base_unit, conversion_factor
		FROM reference_items ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("query reference items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []models.ReferenceItem
	for rows.Next() {
		var item models.ReferenceItem
		var departments, factor sql.NullString
		if err := rows.Scan(&item.Name, &item.Unit, &item.Category, &item.SubCategory, &departments, &item.BaseUnit, &factor); err != nil {
			return nil, fmt.Errorf("scan reference item: %w", err)
		}
		item.Departments = splitDepartments(departments.String)
		item.ConversionFactor = parseFactor(factor.String)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reference items: %w", err)
	}
	return items, nil
}

// ReplaceAll swaps the entire reference dataset in one transaction.
func (r *ReferenceRepository) ReplaceAll(ctx context.Context, items []models.ReferenceItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reference_items`); err != nil {
			return fmt.Errorf("clear reference items: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO reference_items (name, unit, category, sub_category, departments, base_unit, conversion_factor)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close() //nolint:errcheck

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx,
				item.Name, item.Unit, item.Category, item.SubCategory,
				strings.Join(item.Departments, ","), item.BaseUnit,
				item.ConversionFactor.String(),
			); err != nil {
				return fmt.Errorf("insert reference item %q: %w", item.Name, err)
			}
		}
		return nil
	})
}

func splitDepartments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFactor(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return d
}
