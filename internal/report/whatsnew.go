package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
)

// WhatsNew lists the "What's New in Python" articles with their title and
// editors.
func WhatsNew(ctx context.Context, d Deps) (*Report, error) {
	indexURL := d.Config.WhatsNewURL()
	doc, err := d.Loader.Load(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	section, err := scraper.Find(doc.Selection, "section", scraper.Attr("id", "what-s-new-in-python"))
	if err != nil {
		return nil, err
	}
	wrapper, err := scraper.Find(section, "div", scraper.Class("toctree-wrapper"))
	if err != nil {
		return nil, err
	}

	entries := wrapper.Find("li").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return scraper.Class("toctree-l1").Match(s)
	})

	r := &Report{
		Mode:   ModeWhatsNew,
		Header: Row{"Article link", "Title", "Editor, author"},
		Rows:   make([]Row, 0, entries.Length()),
	}

	bar := d.progress(entries.Length(), "Parsing articles")
	for i := range entries.Nodes {
		articleURL, err := link(entries.Eq(i), indexURL)
		if err != nil {
			return nil, err
		}
		d.log().Debug("Loading article", logger.Fields{"n": i + 1, "of": entries.Length(), "url": articleURL})

		row, err := whatsNewRow(ctx, d.Loader, articleURL)
		if err != nil {
			return nil, fmt.Errorf("article %s: %w", articleURL, err)
		}
		r.Rows = append(r.Rows, row)
		bar.Add(1) //nolint:errcheck
	}
	bar.Finish() //nolint:errcheck

	return r, nil
}

func whatsNewRow(ctx context.Context, l Loader, articleURL string) (Row, error) {
	doc, err := l.Load(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	h1, err := scraper.Find(doc.Selection, "h1")
	if err != nil {
		return nil, err
	}
	dl, err := scraper.Find(doc.Selection, "dl")
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(h1.Text())
	credit := strings.TrimSpace(strings.ReplaceAll(dl.Text(), "\n", " "))
	return Row{articleURL, title, credit}, nil
}
