package config

import (
	"errors"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// AppName is used for the cache directory and the default User-Agent.
const AppName = "pydocs-parser"

const (
	DocsURL = "https://docs.python.org/3/"
	PEPURL  = "https://peps.python.org/"

	DefaultTimeout   = 30 * time.Second
	DefaultCacheTTL  = 24 * time.Hour
	DefaultUserAgent = AppName + "/1.0 (github.com/pfrederiksen/pydocs-parser)"
)

var (
	ErrInvalidURL          = errors.New("invalid url: must be absolute http(s)")
	ErrInvalidTimeout      = errors.New("invalid timeout: must be positive")
	ErrInvalidCacheTTL     = errors.New("invalid cache ttl: must not be negative")
	ErrEmptyExpectedStatus = errors.New("expected status table is empty")
)

// ExpectedStatus maps the one-letter status code shown in the PEP index to
// the detail-page statuses that agree with it. The empty code covers PEPs
// listed without a status letter.
type ExpectedStatus map[string][]string

// Allows reports whether status is valid for code. ok is false when the code
// itself is unknown.
func (e ExpectedStatus) Allows(code, status string) (allowed, ok bool) {
	statuses, ok := e[code]
	if !ok {
		return false, false
	}
	for _, s := range statuses {
		if s == status {
			return true, true
		}
	}
	return false, true
}

// DefaultExpectedStatus returns a fresh copy of the built-in table.
func DefaultExpectedStatus() ExpectedStatus {
	return ExpectedStatus{
		"A": {"Active", "Accepted"},
		"D": {"Deferred"},
		"F": {"Final"},
		"P": {"Provisional"},
		"R": {"Rejected"},
		"S": {"Superseded"},
		"W": {"Withdrawn"},
		"":  {"Draft", "Active"},
	}
}

// Config is the process-wide configuration.
type Config struct {
	DocsURL  string
	PEPURL   string
	BaseDir  string
	CacheDir string
	// CacheTTL is how long a response without freshness headers is served
	// from the cache. Zero leaves freshness to the response headers.
	CacheTTL  time.Duration
	LogDir    string
	Timeout   time.Duration
	UserAgent string
	Expected  ExpectedStatus
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DocsURL:   DocsURL,
		PEPURL:    PEPURL,
		BaseDir:   ".",
		CacheDir:  filepath.Join(xdg.CacheHome, AppName),
		CacheTTL:  DefaultCacheTTL,
		LogDir:    "logs",
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Expected:  DefaultExpectedStatus(),
	}
}

// Validate checks the invariants the report routines rely on.
func (c *Config) Validate() error {
	for _, raw := range []string{c.DocsURL, c.PEPURL} {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return ErrInvalidURL
		}
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	if len(c.Expected) == 0 {
		return ErrEmptyExpectedStatus
	}
	return nil
}

// WhatsNewURL is the release-notes index.
func (c *Config) WhatsNewURL() string {
	return resolve(c.DocsURL, "whatsnew/")
}

// DownloadsURL is the documentation download page.
func (c *Config) DownloadsURL() string {
	return resolve(c.DocsURL, "download.html")
}

// LogFile is the rotated log file. A relative LogDir is taken from BaseDir.
func (c *Config) LogFile() string {
	dir := c.LogDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.BaseDir, dir)
	}
	return filepath.Join(dir, "parser.log")
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return base + ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return base + ref
	}
	return b.ResolveReference(r).String()
}
