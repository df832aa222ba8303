package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/indentd/services/indent/domain/models"

	appsvcs "github.com/ghuser/indentd/services/indent/application/services"
)

func TestShareMessage(t *testing.T) {
	in := models.NewIndent("MRN-042", "Kitchen", "02-09-2026", "A. Sharma", time.Now(), []models.IndentLine{
		{ItemName: "Salt", Quantity: decimal.NewFromInt(2), Unit: "kg"},
		{ItemName: "Sugar", Quantity: decimal.NewFromInt(1), Unit: "kg"},
	})

	text, link := appsvcs.ShareMessage(in)
	for _, want := range []string{"MRN-042", "Kitchen", "A. Sharma", "02-09-2026", "2 item(s)"} {
		if !strings.Contains(text, want) {
			t.Errorf("text %q missing %q", text, want)
		}
	}
	if !strings.HasPrefix(link, "https://wa.me/?text=") {
		t.Errorf("link = %q", link)
	}
	if strings.Contains(link, " ") {
		t.Error("link contains unescaped spaces")
	}
}

func TestDraftSessionRoundTrip(t *testing.T) {
	session := newTestSession()

	d := appsvcs.DraftFromSession(session)
	if len(d.Rows) != models.DefaultDraftRows {
		t.Fatalf("fresh draft has %d rows, want %d", len(d.Rows), models.DefaultDraftRows)
	}
	d.Department = "Kitchen"
	appsvcs.SaveDraft(session, d)

	again := appsvcs.DraftFromSession(session)
	if again.Department != "Kitchen" {
		t.Errorf("Department = %q after round trip", again.Department)
	}
}

func TestResetDraftAfterSubmit_keepsDefaults(t *testing.T) {
	session := newTestSession()
	in := models.NewIndent("MRN-001", "Bar", "", "A. Sharma", time.Now(), nil)

	d := appsvcs.ResetDraftAfterSubmit(session, in)
	if len(d.Rows) != 1 {
		t.Errorf("reset draft has %d rows, want 1", len(d.Rows))
	}
	if d.Department != "Bar" || d.RequestedBy != "A. Sharma" {
		t.Errorf("defaults not retained: %+v", d)
	}

	// The next fresh draft inherits the last-used defaults too.
	delete(session.Values, "indent_draft")
	next := appsvcs.DraftFromSession(session)
	if next.Department != "Bar" || next.RequestedBy != "A. Sharma" {
		t.Errorf("fresh draft not seeded: dept=%q by=%q", next.Department, next.RequestedBy)
	}
}
