package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingProgress records the ticks a report makes.
type countingProgress struct {
	total       int
	description string
	ticks       int
	finished    bool
}

func (p *countingProgress) Add(n int) error {
	p.ticks += n
	return nil
}

func (p *countingProgress) Finish() error {
	p.finished = true
	return nil
}

func recordProgress(d *Deps) *[]*countingProgress {
	var bars []*countingProgress
	d.Progress = func(total int, description string) Progress {
		p := &countingProgress{total: total, description: description}
		bars = append(bars, p)
		return p
	}
	return &bars
}

func TestProgress_OneTickPerEntry(t *testing.T) {
	tests := []struct {
		name  string
		site  func(t *testing.T) *site
		run   Func
		count int
	}{
		{
			name: "whats-new articles",
			site: func(t *testing.T) *site {
				return newSite(t, map[string]string{
					"/3/whatsnew/":          whatsNewIndex("3.13.html", "3.12.html", "3.11.html"),
					"/3/whatsnew/3.13.html": whatsNewArticle("3.13", "Thomas Wouters"),
					"/3/whatsnew/3.12.html": whatsNewArticle("3.12", "Adam Turner"),
					"/3/whatsnew/3.11.html": whatsNewArticle("3.11", "Pablo Galindo Salgado"),
				})
			},
			run:   WhatsNew,
			count: 3,
		},
		{
			name: "pep pages",
			site: func(t *testing.T) *site {
				return pepSite(t, []pepEntry{{1, "PA", "Active"}, {8, "PA", "Active"}, {20, "IA", "Active"}, {3000, "PF", "Final"}})
			},
			run:   PEP,
			count: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.site(t)
			bars := recordProgress(&s.deps)

			_, err := tt.run(context.Background(), s.deps)
			require.NoError(t, err)

			require.Len(t, *bars, 1)
			bar := (*bars)[0]
			require.Equal(t, tt.count, bar.total)
			require.Equal(t, tt.count, bar.ticks)
			require.True(t, bar.finished)
		})
	}
}

func TestProgress_StopsOnError(t *testing.T) {
	s := newSite(t, map[string]string{
		"/peps/":          pepIndex([]pepEntry{{1, "PF", "Final"}, {2, "PF", "Final"}}),
		"/peps/pep-0001/": pepPage("Final"),
	})
	bars := recordProgress(&s.deps)

	_, err := PEP(context.Background(), s.deps)
	require.Error(t, err)
	require.Len(t, *bars, 1)
	require.Equal(t, 1, (*bars)[0].ticks)
	require.False(t, (*bars)[0].finished)
}

func TestProgressBar_Writes(t *testing.T) {
	var buf bytes.Buffer
	bar := ProgressBar(&buf)(2, "Checking PEPs")

	require.NoError(t, bar.Add(1))
	require.NoError(t, bar.Finish())
	require.Contains(t, buf.String(), "Checking PEPs")
}
