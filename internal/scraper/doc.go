// Package scraper fetches and queries pages of the Python documentation site.
//
// A Fetcher issues GET requests through a resty client whose transport is an
// HTTP cache persisted in SQLite, normalizes response text to UTF-8 and parses
// it into goquery documents. Find locates required elements in a parsed page
// and fails with ElementNotFoundError when the page no longer has the
// expected structure.
package scraper
