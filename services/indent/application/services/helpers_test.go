package services_test

import (
	"context"
	"fmt"

	"github.com/gorilla/sessions"

	"github.com/ghuser/indentd/pkg/config"
	"github.com/ghuser/indentd/pkg/logger"
	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"
)

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newTestSession() *sessions.Session {
	return sessions.NewSession(nil, "test")
}

// fakeIndentLog is an in-memory IndentLog. The request column is the mrn cell
// of every stored line prefixed by a header cell, matching the real store.
type fakeIndentLog struct {
	header      []string
	lines       []models.LogLine
	columnErr   error
	appendErr   error
	allLinesErr error
	appends     int
}

func newFakeIndentLog() *fakeIndentLog {
	return &fakeIndentLog{header: []string{"MRN"}}
}

func (f *fakeIndentLog) RequestColumn(ctx context.Context) ([]string, error) {
	if f.columnErr != nil {
		return nil, f.columnErr
	}
	column := append([]string{}, f.header...)
	for _, l := range f.lines {
		column = append(column, l.MRN)
	}
	return column, nil
}

func (f *fakeIndentLog) AppendLines(ctx context.Context, indent *models.Indent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.lines = append(f.lines, indent.LogLines()...)
	f.appends++
	return nil
}

func (f *fakeIndentLog) AllLines(ctx context.Context) ([]models.LogLine, error) {
	if f.allLinesErr != nil {
		return nil, f.allLinesErr
	}
	return append([]models.LogLine{}, f.lines...), nil
}

func (f *fakeIndentLog) LinesByMRN(ctx context.Context, mrn string) ([]models.LogLine, error) {
	var out []models.LogLine
	for _, l := range f.lines {
		if l.MRN == mrn {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", indentdomain.ErrIndentNotFound, mrn)
	}
	return out, nil
}

// fakeReferenceRepo serves a fixed dataset.
type fakeReferenceRepo struct {
	items    []models.ReferenceItem
	allErr   error
	replaced []models.ReferenceItem
}

func (f *fakeReferenceRepo) All(ctx context.Context) ([]models.ReferenceItem, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return append([]models.ReferenceItem{}, f.items...), nil
}

func (f *fakeReferenceRepo) ReplaceAll(ctx context.Context, items []models.ReferenceItem) error {
	f.replaced = items
	f.items = items
	return nil
}
