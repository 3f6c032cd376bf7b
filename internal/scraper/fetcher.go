package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/gregjones/httpcache"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"
)

const (
	DefaultUserAgent = "pydocs-parser/1.0 (github.com/pfrederiksen/pydocs-parser)"
	DefaultTimeout   = 30 * time.Second
)

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Cache stores responses between runs. Nil disables caching.
	Cache httpcache.Cache
	// CacheTTL keeps responses that carry no Cache-Control or Expires header
	// fresh for this long. Zero leaves them to httpcache's header rules.
	CacheTTL time.Duration
	// Metrics receives fetch counters and timings; nil uses the default tracker.
	Metrics *logger.Metrics
}

// Fetcher loads pages over HTTP.
type Fetcher struct {
	client  *resty.Client
	metrics *logger.Metrics
}

// New creates a Fetcher. Requests are never retried.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetRetryCount(0)

	if opts.Cache != nil {
		t := httpcache.NewTransport(opts.Cache)
		t.MarkCachedResponses = true
		t.Transport = http.DefaultTransport
		if opts.CacheTTL > 0 {
			t.Transport = &defaultFreshness{next: http.DefaultTransport, ttl: opts.CacheTTL}
		}
		client.SetTransport(t)
	}

	return &Fetcher{client: client, metrics: opts.Metrics}
}

// defaultFreshness adds a max-age to upstream responses that say nothing
// about their freshness, so httpcache stores them as fresh.
type defaultFreshness struct {
	next http.RoundTripper
	ttl  time.Duration
}

// RoundTrip implements http.RoundTripper.
func (t *defaultFreshness) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Header.Get("Cache-Control") == "" && resp.Header.Get("Expires") == "" {
		resp.Header.Set("Cache-Control", fmt.Sprintf("max-age=%d", int64(t.ttl/time.Second)))
	}
	return resp, nil
}

func (f *Fetcher) incr(name string) {
	if f.metrics != nil {
		f.metrics.IncrCounter(name)
		return
	}
	logger.IncrCounter(name)
}

func (f *Fetcher) timing(name string, d time.Duration) {
	if f.metrics != nil {
		f.metrics.RecordTiming(name, d)
		return
	}
	logger.RecordTiming(name, d)
}

// Download fetches rawURL and returns the raw response body.
func (f *Fetcher) Download(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()
	f.incr("fetch.requests")

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, &ConnectionError{URL: rawURL, Err: err}
	}
	f.timing("fetch", time.Since(start))

	if resp.Header().Get(httpcache.XFromCache) != "" {
		f.incr("fetch.cache_hits")
	}
	logger.Debug("Fetched page", logger.Fields{
		"url":    rawURL,
		"status": resp.StatusCode(),
		"cached": resp.Header().Get(httpcache.XFromCache) != "",
	})

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &ConnectionError{URL: rawURL, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

// Get fetches rawURL and returns its body decoded as UTF-8. Invalid byte
// sequences are replaced rather than rejected.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), body)
	if err != nil {
		return nil, &ConnectionError{URL: rawURL, Err: fmt.Errorf("decoding body: %w", err)}
	}
	return text, nil
}

// Load fetches rawURL and parses it into a document whose Url is set, so
// relative links can be resolved against it.
func (f *Fetcher) Load(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", rawURL, err)
	}
	if u, err := url.Parse(rawURL); err == nil {
		doc.Url = u
	}
	return doc, nil
}

// ResolveURL resolves href against base.
func ResolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", href, err)
	}
	return b.ResolveReference(ref).String(), nil
}
