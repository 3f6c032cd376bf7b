package report

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/pydocs-parser/internal/config"
)

func TestReconciler_Check(t *testing.T) {
	tests := []struct {
		name         string
		code, status string
		wantMismatch *Mismatch
	}{
		{"active matches A", "A", "Active", nil},
		{"accepted matches A", "A", "Accepted", nil},
		{"draft does not match A", "A", "Draft", &Mismatch{Link: "l", Found: "Draft", Expected: []string{"Active", "Accepted"}}},
		{"draft matches empty code", "", "Draft", nil},
		{"withdrawn does not match empty code", "", "Withdrawn", &Mismatch{Link: "l", Found: "Withdrawn", Expected: []string{"Draft", "Active"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewReconciler(config.DefaultExpectedStatus())

			m, err := rec.Check("l", tt.code, tt.status)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantMismatch, m); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if rec.Tally.Count(tt.status) != 1 || rec.Tally.Total != 1 {
				t.Errorf("tally = %d/%d, want status counted once", rec.Tally.Count(tt.status), rec.Tally.Total)
			}
		})
	}
}

func TestReconciler_UnknownCode(t *testing.T) {
	rec := NewReconciler(config.DefaultExpectedStatus())

	_, err := rec.Check("https://peps.python.org/pep-9999/", "Z", "Final")

	var unknown *UnknownStatusCodeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Check() error = %v, want *UnknownStatusCodeError", err)
	}
	if unknown.Link != "https://peps.python.org/pep-9999/" {
		t.Errorf("Link = %q", unknown.Link)
	}
	if rec.Tally.Total != 0 {
		t.Errorf("Total = %d, want 0", rec.Tally.Total)
	}
}

func TestReconciler_MismatchDoesNotAliasTable(t *testing.T) {
	table := config.DefaultExpectedStatus()
	rec := NewReconciler(table)

	m, _ := rec.Check("l", "F", "Draft")
	m.Expected[0] = "changed"

	if table["F"][0] != "Final" {
		t.Errorf("expected status table modified through mismatch: %v", table["F"])
	}
}

func TestStatusTally(t *testing.T) {
	tally := NewStatusTally()
	for _, s := range []string{"Final", "Draft", "Final", "Active", "Draft", "Final"} {
		tally.Observe(s)
	}

	if tally.Total != 6 {
		t.Errorf("Total = %d, want 6", tally.Total)
	}
	if diff := cmp.Diff([]string{"Final", "Draft", "Active"}, tally.Statuses()); diff != "" {
		t.Errorf("Statuses (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Row{{"Final", "3"}, {"Draft", "2"}, {"Active", "1"}}, tally.Rows()); diff != "" {
		t.Errorf("Rows (-want +got):\n%s", diff)
	}
}
