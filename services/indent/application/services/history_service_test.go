package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"

	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

func logLine(mrn, ts, dept, date, item, qty string) models.LogLine {
	return models.LogLine{
		MRN: mrn, Timestamp: ts, RequestedBy: "A. Sharma",
		Department: dept, RequiredDate: date, Item: item, Qty: qty,
		Unit: "kg", Note: "N/A",
	}
}

func historyFixture() *fakeIndentLog {
	log := newFakeIndentLog()
	log.lines = []models.LogLine{
		logLine("MRN-001", "2026-08-01 09:00:00", "Kitchen", "05-08-2026", "Basmati Rice", "2.5"),
		logLine("MRN-002", "2026-08-10 11:30:00", "Bar", "12-08-2026", "Lime", "30"),
		logLine("MRN-003", "garbage", "Kitchen", "2026-08-20", "Salt", "not-a-number"),
		logLine("MRN-004", "2026-08-25 16:45:00", "Housekeeping", "", "Detergent", "4"),
	}
	return log
}

func newHistoryService(log *fakeIndentLog) *appsvcs.HistoryService {
	return appsvcs.NewHistoryService(log, nil, 90, testLogger())
}

func TestHistoryService_Load_degradesTypesGracefully(t *testing.T) {
	rows, err := newHistoryService(historyFixture()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}

	// Malformed timestamp and qty degrade to zero values, never fail the load.
	bad := rows[2]
	if !bad.SubmittedAt.IsZero() {
		t.Errorf("garbage timestamp parsed as %v", bad.SubmittedAt)
	}
	if !bad.Qty.Equal(decimal.Zero) {
		t.Errorf("garbage qty parsed as %s", bad.Qty)
	}
	// ISO dates from older rows still parse.
	if bad.RequiredDate.IsZero() {
		t.Error("ISO required date not parsed")
	}
	if got := rows[0].Qty; !got.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("qty = %s, want 2.5", got)
	}
}

func TestHistoryService_Search_filters(t *testing.T) {
	svc := newHistoryService(historyFixture())
	ctx := context.Background()

	t.Run("inclusive date range", func(t *testing.T) {
		rows, err := svc.Search(ctx, appsvcs.HistoryFilter{
			From: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		// Both boundary rows survive; the dateless row is excluded.
		if len(rows) != 2 || rows[0].MRN != "MRN-001" || rows[1].MRN != "MRN-002" {
			t.Errorf("rows = %+v", rows)
		}
	})

	t.Run("department membership", func(t *testing.T) {
		rows, err := svc.Search(ctx, appsvcs.HistoryFilter{Departments: []string{"Kitchen"}})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("len(rows) = %d, want 2", len(rows))
		}
	})

	t.Run("mrn substring case-insensitive", func(t *testing.T) {
		rows, err := svc.Search(ctx, appsvcs.HistoryFilter{MRNQuery: "mrn-00"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(rows) != 4 {
			t.Errorf("len(rows) = %d, want 4", len(rows))
		}
	})

	t.Run("item substring case-insensitive", func(t *testing.T) {
		rows, err := svc.Search(ctx, appsvcs.HistoryFilter{ItemQuery: "RICE"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(rows) != 1 || rows[0].Item != "Basmati Rice" {
			t.Errorf("rows = %+v", rows)
		}
	})

	t.Run("filters conjoin", func(t *testing.T) {
		rows, err := svc.Search(ctx, appsvcs.HistoryFilter{
			Departments: []string{"Kitchen"},
			ItemQuery:   "salt",
		})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(rows) != 1 || rows[0].MRN != "MRN-003" {
			t.Errorf("rows = %+v", rows)
		}
	})
}

func TestHistoryService_Load_storeFailure(t *testing.T) {
	log := newFakeIndentLog()
	log.allLinesErr = errors.New("store offline")
	if _, err := newHistoryService(log).Load(context.Background()); err == nil {
		t.Fatal("expected error when the store is unreachable")
	}
}

func TestHistoryService_RequestByMRN(t *testing.T) {
	ref := testReference(refItem("Basmati Rice", "kg", "Groceries", "Grains"))
	svc := newHistoryService(historyFixture())

	in, err := svc.RequestByMRN(context.Background(), "MRN-001", ref)
	if err != nil {
		t.Fatalf("RequestByMRN: %v", err)
	}
	if in.MRN != "MRN-001" || in.Department != "Kitchen" || len(in.Lines) != 1 {
		t.Errorf("indent = %+v", in)
	}
	l := in.Lines[0]
	// Category re-derived from the reference dataset for rendering.
	if l.Category != "Groceries" || l.SubCategory != "Grains" {
		t.Errorf("categories = %q/%q", l.Category, l.SubCategory)
	}
	// "N/A" stored notes come back blank.
	if l.Note != "" {
		t.Errorf("note = %q, want empty", l.Note)
	}

	if _, err := svc.RequestByMRN(context.Background(), "MRN-999", ref); !errors.Is(err, indentdomain.ErrIndentNotFound) {
		t.Errorf("err = %v, want ErrIndentNotFound", err)
	}
}

func TestHistoryService_DefaultFilter(t *testing.T) {
	svc := newHistoryService(newFakeIndentLog())
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	f := svc.DefaultFilter(now)
	if f.From.IsZero() || f.To.IsZero() {
		t.Fatal("default filter must bound both ends")
	}
	if days := int(f.To.Sub(f.From).Hours() / 24); days != 90 {
		t.Errorf("window = %d days, want 90", days)
	}
}
