package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/pydocs-parser/internal/config"
	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
)

const (
	ModeWhatsNew       = "whats-new"
	ModeLatestVersions = "latest-versions"
	ModeDownload       = "download"
	ModePEP            = "pep"
)

// Row is one line of a report, already formatted for display.
type Row []string

// Report is the result of one mode. Header is empty for modes that only
// produce a side effect (download).
type Report struct {
	Mode   string `json:"mode"`
	Header Row    `json:"header,omitempty"`
	Rows   []Row  `json:"rows,omitempty"`
	// Footer is a summary line rendered after Rows, e.g. the PEP total.
	Footer      Row        `json:"footer,omitempty"`
	Mismatches  []Mismatch `json:"mismatches,omitempty"`
	ArchiveURL  string     `json:"archive_url,omitempty"`
	ArchivePath string     `json:"archive_path,omitempty"`
}

// Loader fetches pages. *scraper.Fetcher implements it.
type Loader interface {
	Load(ctx context.Context, url string) (*goquery.Document, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// ArchiveStore persists downloaded files. *storage.Storage implements it.
type ArchiveStore interface {
	SaveArchive(filename string, data []byte) (string, error)
}

// Deps are the collaborators shared by all modes.
type Deps struct {
	Loader   Loader
	Config   *config.Config
	Archives ArchiveStore
	Log      *logger.Logger
	// Progress reports per-entry progress of the long modes. Nil draws nothing.
	Progress ProgressFunc
}

func (d Deps) log() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Default()
}

// Func builds one report.
type Func func(ctx context.Context, d Deps) (*Report, error)

// Modes maps a mode name to its report builder.
var Modes = map[string]Func{
	ModeWhatsNew:       WhatsNew,
	ModeLatestVersions: LatestVersions,
	ModeDownload:       Download,
	ModePEP:            PEP,
}

// ModeNames lists the modes in the order they are documented.
func ModeNames() []string {
	return []string{ModeWhatsNew, ModeLatestVersions, ModeDownload, ModePEP}
}

// Run builds the report for mode.
func Run(ctx context.Context, mode string, d Deps) (*Report, error) {
	fn, ok := Modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q (must be one of %s)", mode, strings.Join(ModeNames(), ", "))
	}
	return fn(ctx, d)
}

// link returns the href of the first anchor under root, resolved against base.
func link(root *goquery.Selection, base string) (string, error) {
	a, err := scraper.Find(root, "a")
	if err != nil {
		return "", err
	}
	href, ok := a.Attr("href")
	if !ok {
		return "", &LayoutError{Page: base, Reason: fmt.Sprintf("link %q has no href", strings.TrimSpace(a.Text()))}
	}
	return scraper.ResolveURL(base, href)
}
