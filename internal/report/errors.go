package report

import "fmt"

// LayoutError means a page no longer has the layout a mode depends on.
type LayoutError struct {
	Page   string
	Reason string
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("unexpected layout of %s: %s", e.Page, e.Reason)
}

// UnknownStatusCodeError is returned when the PEP index uses a status letter
// missing from the expected-status table. The table needs updating.
type UnknownStatusCodeError struct {
	Code string
	Link string
}

// Error implements the error interface.
func (e *UnknownStatusCodeError) Error() string {
	return fmt.Sprintf("status code %q of %s is not in the expected status table", e.Code, e.Link)
}
