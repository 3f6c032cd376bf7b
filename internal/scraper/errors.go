package scraper

import (
	"fmt"
	"strings"
)

// ConnectionError reports a page that could not be loaded, either because
// the transport failed or because the server answered with an error status.
type ConnectionError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("loading page %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("loading page %s: %v", e.URL, e.Err)
}

// Unwrap returns the transport error, nil for a bad status.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ElementNotFoundError means a required element is missing from a page.
type ElementNotFoundError struct {
	Tag     string
	Filters []Filter
}

// Error implements the error interface.
func (e *ElementNotFoundError) Error() string {
	if len(e.Filters) == 0 {
		return fmt.Sprintf("tag <%s> not found", e.Tag)
	}
	parts := make([]string, len(e.Filters))
	for i, f := range e.Filters {
		parts[i] = f.String()
	}
	return fmt.Sprintf("tag <%s> with [%s] not found", e.Tag, strings.Join(parts, " "))
}
