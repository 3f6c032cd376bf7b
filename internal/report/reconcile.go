package report

import (
	"strconv"

	"github.com/pfrederiksen/pydocs-parser/internal/config"
)

// StatusTally counts PEP statuses in the order they were first seen.
type StatusTally struct {
	order  []string
	counts map[string]int
	Total  int
}

// NewStatusTally returns an empty tally.
func NewStatusTally() *StatusTally {
	return &StatusTally{counts: make(map[string]int)}
}

// Observe counts one PEP with the given status.
func (t *StatusTally) Observe(status string) {
	if _, seen := t.counts[status]; !seen {
		t.order = append(t.order, status)
	}
	t.counts[status]++
	t.Total++
}

// Count returns how many PEPs had status.
func (t *StatusTally) Count(status string) int {
	return t.counts[status]
}

// Statuses returns the distinct statuses in first-seen order.
func (t *StatusTally) Statuses() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Rows returns one (status, count) row per distinct status.
func (t *StatusTally) Rows() []Row {
	rows := make([]Row, 0, len(t.order))
	for _, s := range t.order {
		rows = append(rows, Row{s, strconv.Itoa(t.counts[s])})
	}
	return rows
}

// Mismatch records a PEP whose page status disagrees with its index letter.
type Mismatch struct {
	Link     string   `json:"link"`
	Found    string   `json:"found"`
	Expected []string `json:"expected"`
}

// Reconciler checks page statuses against the expected-status table and
// tallies every status it sees.
type Reconciler struct {
	expected config.ExpectedStatus
	Tally    *StatusTally
}

// NewReconciler checks statuses against expected with a fresh tally.
func NewReconciler(expected config.ExpectedStatus) *Reconciler {
	return &Reconciler{expected: expected, Tally: NewStatusTally()}
}

// Check counts status and compares it with what code allows. A disagreement
// is returned as a Mismatch, not an error; the only error is a code missing
// from the table.
func (r *Reconciler) Check(link, code, status string) (*Mismatch, error) {
	allowed, known := r.expected.Allows(code, status)
	if !known {
		return nil, &UnknownStatusCodeError{Code: code, Link: link}
	}

	r.Tally.Observe(status)
	if allowed {
		return nil, nil
	}

	expected := make([]string, len(r.expected[code]))
	copy(expected, r.expected[code])
	return &Mismatch{Link: link, Found: status, Expected: expected}, nil
}
