package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pfrederiksen/pydocs-parser/internal/config"
	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
	"github.com/pfrederiksen/pydocs-parser/internal/storage"
)

// site serves fixed pages by path and 404s everything else.
type site struct {
	server *httptest.Server
	logs   *bytes.Buffer
	deps   Deps
}

func newSite(t *testing.T, pages map[string]string) *site {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.DocsURL = server.URL + "/3/"
	cfg.PEPURL = server.URL + "/peps/"

	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	logs := &bytes.Buffer{}
	return &site{
		server: server,
		logs:   logs,
		deps: Deps{
			Loader:   scraper.New(scraper.Options{Metrics: logger.NewMetrics()}),
			Config:   cfg,
			Archives: store,
			Log:      logger.New(logger.LevelInfo, logs),
		},
	}
}

func (s *site) url(path string) string {
	return s.server.URL + path
}

// warnings counts logged warning lines.
func (s *site) warnings() int {
	return strings.Count(s.logs.String(), `"level":"warn"`)
}
