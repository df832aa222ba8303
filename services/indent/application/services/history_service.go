package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/indentd/pkg/cache"
	"github.com/ghuser/indentd/pkg/logger"
	"github.com/ghuser/indentd/services/indent/domain/models"
	"github.com/ghuser/indentd/services/indent/domain/repositories"
)

// HistoryRow is one log row with its fields reconstructed into typed values.
// Unparseable cells degrade to zero values instead of failing the load: the
// log store is weakly typed and may carry legacy or hand-edited rows.
type HistoryRow struct {
	MRN          string
	SubmittedAt  time.Time // zero when unparseable
	RequestedBy  string
	Department   string
	RequiredDate time.Time // zero when unparseable
	Item         string
	Qty          decimal.Decimal
	Unit         string
	Note         string
}

// HistoryFilter is a conjunction of user filters over the history view.
// Zero-value fields are inactive.
type HistoryFilter struct {
	From        time.Time // inclusive, on RequiredDate
	To          time.Time // inclusive, on RequiredDate
	Departments []string
	Requesters  []string
	MRNQuery    string // case-insensitive substring
	ItemQuery   string // case-insensitive substring
}

// HistoryService loads persisted indent lines, reconstructs typed fields, and
// applies user filters. Loads are served from a short-TTL cache that the
// worker invalidates on every submission.
type HistoryService struct {
	log        repositories.IndentLog
	cache      *pkgcache.HistoryCache
	windowDays int
	logger     logger.Logger
}

// NewHistoryService wires the history view. windowDays bounds the default
// date range; the cache may be nil (tests).
func NewHistoryService(log repositories.IndentLog, cache *pkgcache.HistoryCache, windowDays int, lg logger.Logger) *HistoryService {
	return &HistoryService{log: log, cache: cache, windowDays: windowDays, logger: lg}
}

// DefaultFilter returns the filter applied on first load and on reset:
// the trailing window ending today, all departments, no text queries.
func (s *HistoryService) DefaultFilter(now time.Time) HistoryFilter {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return HistoryFilter{
		From: today.AddDate(0, 0, -s.windowDays),
		To:   today,
	}
}

// Load returns all typed history rows in insertion order. A store failure
// returns the error with no rows; the caller reports it and renders an empty
// view rather than failing the page.
func (s *HistoryService) Load(ctx context.Context) ([]HistoryRow, error) {
	raw, err := s.rawLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("load indent log: %w", err)
	}

	rows := make([]HistoryRow, len(raw))
	for i, l := range raw {
		rows[i] = typedRow(l)
	}
	return rows, nil
}

// Search loads the history and applies the filter.
func (s *HistoryService) Search(ctx context.Context, f HistoryFilter) ([]HistoryRow, error) {
	rows, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return applyFilter(rows, f), nil
}

// RequestByMRN reconstructs one submitted indent from its log rows, re-deriving
// category grouping from the reference dataset (the log itself does not store
// category columns). Used to render the document after the fact.
func (s *HistoryService) RequestByMRN(ctx context.Context, mrn string, reference *ReferenceService) (*models.Indent, error) {
	raw, err := s.log.LinesByMRN(ctx, mrn)
	if err != nil {
		return nil, err
	}

	first := raw[0]
	lines := make([]models.IndentLine, 0, len(raw))
	for _, l := range raw {
		qty, qerr := decimal.NewFromString(strings.TrimSpace(l.Qty))
		if qerr != nil {
			qty = decimal.Zero
		}
		note := l.Note
		if note == "N/A" {
			note = ""
		}
		line := models.IndentLine{
			ItemName:    l.Item,
			Quantity:    qty,
			Unit:        l.Unit,
			Note:        note,
			Category:    models.DefaultCategory,
			SubCategory: models.DefaultSubCategory,
		}
		if ref, rerr := reference.Lookup(ctx, l.Item); rerr == nil {
			line.Category = ref.Category
			line.SubCategory = ref.SubCategory
		}
		lines = append(lines, line)
	}

	createdAt, terr := time.Parse(models.TimestampLayout, first.Timestamp)
	if terr != nil {
		createdAt = time.Time{}
	}
	return models.NewIndent(first.MRN, first.Department, first.RequiredDate, first.RequestedBy, createdAt, lines), nil
}

func (s *HistoryService) rawLines(ctx context.Context) ([]models.LogLine, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			return fromCachedLines(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "history cache read failed, falling back to store", "error", err)
		}
	}

	raw, err := s.log.AllLines(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			if err := s.cache.Set(context.Background(), toCachedLines(raw)); err != nil {
				s.logger.Warn("history cache warm failed", "error", err)
			}
		}()
	}
	return raw, nil
}

// typedRow reconstructs one raw log row. Required dates are tried in the
// store's DD-MM-YYYY format first, then ISO, because older rows predate the
// current format.
func typedRow(l models.LogLine) HistoryRow {
	row := HistoryRow{
		MRN:         l.MRN,
		RequestedBy: l.RequestedBy,
		Department:  l.Department,
		Item:        l.Item,
		Unit:        l.Unit,
		Note:        l.Note,
		Qty:         decimal.Zero,
	}
	if ts, err := time.Parse(models.TimestampLayout, l.Timestamp); err == nil {
		row.SubmittedAt = ts
	} else if ts, err := time.Parse(time.RFC3339, l.Timestamp); err == nil {
		row.SubmittedAt = ts
	}
	for _, layout := range []string{models.RequiredDateLayout, "2006-01-02"} {
		if d, err := time.Parse(layout, strings.TrimSpace(l.RequiredDate)); err == nil {
			row.RequiredDate = d
			break
		}
	}
	if q, err := decimal.NewFromString(strings.TrimSpace(l.Qty)); err == nil {
		row.Qty = q
	}
	return row
}

func applyFilter(rows []HistoryRow, f HistoryFilter) []HistoryRow {
	out := make([]HistoryRow, 0, len(rows))
	for _, r := range rows {
		if !f.From.IsZero() || !f.To.IsZero() {
			if r.RequiredDate.IsZero() {
				continue
			}
			day := r.RequiredDate.Truncate(24 * time.Hour)
			if !f.From.IsZero() && day.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && day.After(f.To) {
				continue
			}
		}
		if len(f.Departments) > 0 && !containsString(f.Departments, r.Department) {
			continue
		}
		if len(f.Requesters) > 0 && !containsString(f.Requesters, r.RequestedBy) {
			continue
		}
		if f.MRNQuery != "" && !containsFold(r.MRN, f.MRNQuery) {
			continue
		}
		if f.ItemQuery != "" && !containsFold(r.Item, f.ItemQuery) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func toCachedLines(lines []models.LogLine) []pkgcache.CachedLogLine {
	out := make([]pkgcache.CachedLogLine, len(lines))
	for i, l := range lines {
		out[i] = pkgcache.CachedLogLine(l)
	}
	return out
}

func fromCachedLines(cached []pkgcache.CachedLogLine) []models.LogLine {
	out := make([]models.LogLine, len(cached))
	for i, c := range cached {
		out[i] = models.LogLine(c)
	}
	return out
}
