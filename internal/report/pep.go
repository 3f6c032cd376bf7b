package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
)

const statusLabel = "Status:"

// PEP counts PEPs by the status printed on each PEP page and warns about
// PEPs whose index letter disagrees with that status. The footer holds the
// number of PEPs examined.
func PEP(ctx context.Context, d Deps) (*Report, error) {
	indexURL := d.Config.PEPURL
	doc, err := d.Loader.Load(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	section, err := scraper.Find(doc.Selection, "section", scraper.Attr("id", "numerical-index"))
	if err != nil {
		return nil, err
	}
	tbody, err := scraper.Find(section, "tbody")
	if err != nil {
		return nil, err
	}

	rows := tbody.Find("tr")
	rec := NewReconciler(d.Config.Expected)
	r := &Report{
		Mode:   ModePEP,
		Header: Row{"Status", "Count"},
	}

	bar := d.progress(rows.Length(), "Checking PEPs")
	for i := range rows.Nodes {
		tr := rows.Eq(i)

		cell, err := scraper.Find(tr, "td")
		if err != nil {
			return nil, err
		}
		code := statusCode(cell.Text())

		pepURL, err := link(tr, indexURL)
		if err != nil {
			return nil, err
		}
		d.log().Debug("Loading PEP", logger.Fields{"n": i + 1, "of": rows.Length(), "url": pepURL})

		status, err := pageStatus(ctx, d.Loader, pepURL)
		if err != nil {
			return nil, fmt.Errorf("pep %s: %w", pepURL, err)
		}

		m, err := rec.Check(pepURL, code, status)
		if err != nil {
			return nil, err
		}
		if m != nil {
			d.log().Warn("Mismatched statuses", logger.Fields{
				"link":     m.Link,
				"found":    m.Found,
				"expected": m.Expected,
			})
			r.Mismatches = append(r.Mismatches, *m)
		}
		bar.Add(1) //nolint:errcheck
	}
	bar.Finish() //nolint:errcheck

	r.Rows = rec.Tally.Rows()
	r.Footer = Row{"Total", strconv.Itoa(rec.Tally.Total)}
	return r, nil
}

// statusCode drops the type letter from an index cell such as "SF", leaving
// the status letter, or "" when the cell only holds the type.
func statusCode(cell string) string {
	runes := []rune(strings.TrimSpace(cell))
	if len(runes) == 0 {
		return ""
	}
	return string(runes[1:])
}

// pageStatus reads the value next to the "Status:" term of a PEP page.
func pageStatus(ctx context.Context, l Loader, pepURL string) (string, error) {
	doc, err := l.Load(ctx, pepURL)
	if err != nil {
		return "", err
	}

	dt, err := scraper.Find(doc.Selection, "dt", scraper.Text(statusLabel))
	if err != nil {
		return "", err
	}
	dd := dt.Next()
	if dd.Length() == 0 {
		return "", &scraper.ElementNotFoundError{Tag: "dd"}
	}
	return strings.TrimSpace(dd.Text()), nil
}
