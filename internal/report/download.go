package report

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
)

var pdfA4Pattern = regexp.MustCompile(`.+pdf-a4\.zip$`)

// Download saves the A4 PDF documentation archive. The report has no rows;
// it carries the archive URL and the path it was saved to.
func Download(ctx context.Context, d Deps) (*Report, error) {
	if d.Archives == nil {
		return nil, fmt.Errorf("download: no archive storage configured")
	}

	downloadsURL := d.Config.DownloadsURL()
	doc, err := d.Loader.Load(ctx, downloadsURL)
	if err != nil {
		return nil, err
	}

	content, err := scraper.Find(doc.Selection, "div", scraper.Attr("role", "main"))
	if err != nil {
		return nil, err
	}
	table, err := scraper.Find(content, "table", scraper.Class("docutils"))
	if err != nil {
		return nil, err
	}
	a, err := scraper.Find(table, "a", scraper.AttrMatch("href", pdfA4Pattern))
	if err != nil {
		return nil, err
	}

	href, _ := a.Attr("href")
	archiveURL, err := scraper.ResolveURL(downloadsURL, href)
	if err != nil {
		return nil, err
	}
	filename, err := archiveName(archiveURL)
	if err != nil {
		return nil, err
	}

	data, err := d.Loader.Download(ctx, archiveURL)
	if err != nil {
		return nil, err
	}
	archivePath, err := d.Archives.SaveArchive(filename, data)
	if err != nil {
		return nil, fmt.Errorf("saving archive: %w", err)
	}

	d.log().Info("Archive downloaded and saved", logger.Fields{"path": archivePath, "url": archiveURL})

	return &Report{
		Mode:        ModeDownload,
		ArchiveURL:  archiveURL,
		ArchivePath: archivePath,
	}, nil
}

// archiveName is the final path segment of rawURL.
func archiveName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing archive url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return "", fmt.Errorf("archive url %s has no file name", rawURL)
	}
	return name, nil
}
