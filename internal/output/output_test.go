package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/report"
	"github.com/pfrederiksen/pydocs-parser/internal/storage"
)

func pepReport() *report.Report {
	return &report.Report{
		Mode:   report.ModePEP,
		Header: report.Row{"Status", "Count"},
		Rows:   []report.Row{{"Final", "1"}, {"Draft", "1"}},
		Footer: report.Row{"Total", "2"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPlain, false},
		{"pretty", FormatPretty, false},
		{"FILE", FormatFile, false},
		{" markdown ", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrite_Plain(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf}

	require.NoError(t, w.Write(pepReport(), FormatPlain))
	require.Equal(t, "Status Count\nFinal 1\nDraft 1\nTotal 2\n", buf.String())
}

func TestWrite_Pretty(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf}

	require.NoError(t, w.Write(pepReport(), FormatPretty))

	out := buf.String()
	for _, want := range []string{"Status", "Count", "Final", "Draft", "Total", "+-"} {
		require.Contains(t, out, want)
	}
	require.NotContains(t, out, "STATUS", "header should keep its case")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	finalLine, draftLine := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "Final") {
			finalLine = i
		}
		if strings.Contains(l, "Draft") {
			draftLine = i
		}
	}
	require.Less(t, finalLine, draftLine, "rows must keep report order")
}

func TestWrite_Markdown(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf}

	require.NoError(t, w.Write(pepReport(), FormatMarkdown))

	out := buf.String()
	require.Contains(t, out, "## pep")
	for _, want := range []string{"Status", "Final", "Total"} {
		require.Contains(t, out, want)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf}

	r := pepReport()
	r.Mismatches = []report.Mismatch{{Link: "https://peps.python.org/pep-0008/", Found: "Withdrawn", Expected: []string{"Draft", "Active"}}}
	require.NoError(t, w.Write(r, FormatJSON))

	var decoded report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, report.Row{"Total", "2"}, decoded.Footer)
	require.Len(t, decoded.Mismatches, 1)
}

func TestWrite_File(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	var logs bytes.Buffer
	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	w := &Writer{
		Out:   &bytes.Buffer{},
		Store: store,
		Log:   logger.New(logger.LevelInfo, &logs),
		Now:   func() time.Time { return at },
	}

	r := &report.Report{
		Mode:   report.ModeWhatsNew,
		Header: report.Row{"Article link", "Title", "Editor, author"},
		Rows:   []report.Row{{"https://docs.python.org/3/whatsnew/3.13.html", "What's New In Python 3.13", "Adam Turner"}},
	}
	require.NoError(t, w.Write(r, FormatFile))

	path := filepath.Join(store.BaseDir(), storage.ResultsDir, "whats-new_2026-10-19_09-30-00.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, `Article link,Title,"Editor, author"`, lines[0])
	require.True(t, strings.HasPrefix(lines[1], "https://docs.python.org/3/whatsnew/3.13.html,"))
	require.Contains(t, logs.String(), path)
}

func TestWrite_NoTable(t *testing.T) {
	r := &report.Report{Mode: report.ModeDownload, ArchiveURL: "https://docs.python.org/3/archives/a-pdf-a4.zip"}

	for _, f := range []Format{FormatPlain, FormatPretty, FormatMarkdown, FormatFile} {
		var buf bytes.Buffer
		w := &Writer{Out: &buf}
		require.NoError(t, w.Write(r, f))
		require.Empty(t, buf.String(), "format %q", f)
	}

	require.NoError(t, (&Writer{Out: &bytes.Buffer{}}).Write(nil, FormatPretty))
}
