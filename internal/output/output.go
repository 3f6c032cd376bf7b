package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nao1215/markdown"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/report"
)

// Format selects how a report is written
type Format string

const (
	FormatPlain    Format = ""
	FormatPretty   Format = "pretty"
	FormatFile     Format = "file"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the values accepted by --output.
func Formats() []string {
	return []string{string(FormatPretty), string(FormatFile), string(FormatMarkdown), string(FormatJSON)}
}

// ParseFormat validates an --output value. The empty string selects plain
// output.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatPlain, FormatPretty, FormatFile, FormatMarkdown, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid output: %s (must be one of %s)", s, strings.Join(Formats(), ", "))
}

// ResultStore chooses where saved reports go. *storage.Storage implements it.
type ResultStore interface {
	ResultPath(mode, ext string, at time.Time) (string, error)
}

// Writer renders reports.
type Writer struct {
	Out   io.Writer
	Store ResultStore
	Log   *logger.Logger
	Now   func() time.Time
}

func (w *Writer) log() *logger.Logger {
	if w.Log != nil {
		return w.Log
	}
	return logger.Default()
}

// Write renders r in format f. Reports without a header have no table and
// are skipped by every format except JSON.
func (w *Writer) Write(r *report.Report, f Format) error {
	if r == nil {
		return nil
	}
	if f == FormatJSON {
		return writeJSON(w.Out, r)
	}
	if len(r.Header) == 0 {
		return nil
	}

	switch f {
	case FormatPlain:
		return writePlain(w.Out, r)
	case FormatPretty:
		return writePretty(w.Out, r)
	case FormatMarkdown:
		return writeMarkdown(w.Out, r)
	case FormatFile:
		path, err := w.writeFile(r)
		if err != nil {
			return err
		}
		w.log().Info("Results file saved", logger.Fields{"path": path})
		return nil
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// writePlain prints every row space-separated, header first.
func writePlain(w io.Writer, r *report.Report) error {
	rows := allRows(r)
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

func newTable(r *report.Report) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleDefault)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.AppendHeader(tableRow(r.Header))
	configs := make([]table.ColumnConfig, len(r.Header))
	for i := range r.Header {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignLeft,
		}
	}
	t.SetColumnConfigs(configs)

	for _, row := range r.Rows {
		t.AppendRow(tableRow(row))
	}
	if len(r.Footer) > 0 {
		t.AppendFooter(tableRow(r.Footer))
	}
	return t
}

func writePretty(w io.Writer, r *report.Report) error {
	_, err := fmt.Fprintln(w, newTable(r).Render())
	return err
}

func writeMarkdown(w io.Writer, r *report.Report) error {
	rows := make([][]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		rows = append(rows, row)
	}
	if len(r.Footer) > 0 {
		rows = append(rows, r.Footer)
	}

	return markdown.NewMarkdown(w).
		H2(r.Mode).
		Table(markdown.TableSet{Header: r.Header, Rows: rows}).
		Build()
}

func writeJSON(w io.Writer, r *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// writeFile saves the report as CSV under results/ and returns the path.
func (w *Writer) writeFile(r *report.Report) (string, error) {
	if w.Store == nil {
		return "", fmt.Errorf("file output: no results storage configured")
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	path, err := w.Store.ResultPath(r.Mode, "csv", now())
	if err != nil {
		return "", err
	}

	data := newTable(r).RenderCSV() + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("writing results: %w", err)
	}
	return path, nil
}

func allRows(r *report.Report) []report.Row {
	rows := make([]report.Row, 0, len(r.Rows)+2)
	rows = append(rows, r.Header)
	rows = append(rows, r.Rows...)
	if len(r.Footer) > 0 {
		rows = append(rows, r.Footer)
	}
	return rows
}

func tableRow(row report.Row) table.Row {
	out := make(table.Row, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
