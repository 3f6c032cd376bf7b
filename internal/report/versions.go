package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
)

const allVersionsMarker = "All versions"

var versionPattern = regexp.MustCompile(`Python (?P<version>\d\.\d+) \((?P<status>.*)\)`)

// ParseVersion splits a sidebar link text such as "Python 3.13 (stable)".
// Text that does not follow that form is returned whole as the version with
// an empty status.
func ParseVersion(text string) (version, status string) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return text, ""
	}
	return m[versionPattern.SubexpIndex("version")], m[versionPattern.SubexpIndex("status")]
}

// LatestVersions lists the documentation versions linked from the sidebar.
func LatestVersions(ctx context.Context, d Deps) (*Report, error) {
	docsURL := d.Config.DocsURL
	doc, err := d.Loader.Load(ctx, docsURL)
	if err != nil {
		return nil, err
	}

	sidebar, err := scraper.Find(doc.Selection, "div", scraper.Class("sphinxsidebarwrapper"))
	if err != nil {
		return nil, err
	}

	list := sidebar.Find("ul").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), allVersionsMarker)
	}).First()
	if list.Length() == 0 {
		return nil, &LayoutError{Page: docsURL, Reason: "no sidebar list mentions " + `"` + allVersionsMarker + `"`}
	}

	anchors := list.Find("a")
	r := &Report{
		Mode:   ModeLatestVersions,
		Header: Row{"Documentation link", "Version", "Status"},
		Rows:   make([]Row, 0, anchors.Length()),
	}

	for i := range anchors.Nodes {
		a := anchors.Eq(i)
		href, ok := a.Attr("href")
		if !ok {
			return nil, &LayoutError{Page: docsURL, Reason: fmt.Sprintf("version link %q has no href", strings.TrimSpace(a.Text()))}
		}
		docLink, err := scraper.ResolveURL(docsURL, href)
		if err != nil {
			return nil, err
		}

		version, status := ParseVersion(a.Text())
		r.Rows = append(r.Rows, Row{docLink, version, status})
	}

	return r, nil
}
