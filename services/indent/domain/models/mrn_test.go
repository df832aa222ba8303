package models_test

import (
	"testing"
	"time"

	"github.com/ghuser/indentd/services/indent/domain/models"
)

func TestNextMRN(t *testing.T) {
	tests := []struct {
		name   string
		column []string
		want   string
	}{
		{"empty column", nil, "MRN-001"},
		{"header only", []string{"MRN"}, "MRN-001"},
		{"sequential", []string{"MRN", "MRN-001", "MRN-002"}, "MRN-003"},
		{"garbage between entries", []string{"MRN", "", "garbage", "MRN-007"}, "MRN-008"},
		{"scan skips trailing garbage", []string{"MRN", "MRN-004", "oops", ""}, "MRN-005"},
		{"fallback counts non-empty rows", []string{"MRN", "req-a", "req-b"}, "MRN-003"},
		{"fallback ignores blank rows", []string{"MRN", "", "req-a", ""}, "MRN-002"},
		{"pad widens past 999", []string{"MRN", "MRN-999"}, "MRN-1000"},
		{"error sentinel does not match", []string{"MRN", "MRN-ERR-120000", "MRN-003"}, "MRN-004"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.NextMRN(tt.column); got != tt.want {
				t.Errorf("NextMRN(%v) = %q, want %q", tt.column, got, tt.want)
			}
		})
	}
}

func TestErrorMRN(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 2, 11, 0, time.UTC)
	got := models.ErrorMRN(now)
	if got != "MRN-ERR-140211" {
		t.Errorf("ErrorMRN = %q, want MRN-ERR-140211", got)
	}
	if !models.IsErrorMRN(got) {
		t.Errorf("IsErrorMRN(%q) = false, want true", got)
	}
}

func TestIsErrorMRN_regularNumber(t *testing.T) {
	if models.IsErrorMRN("MRN-042") {
		t.Error("IsErrorMRN(MRN-042) = true, want false")
	}
}
