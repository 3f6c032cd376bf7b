package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FilterKind selects how a Filter is matched.
type FilterKind int

const (
	// FilterAttr matches an attribute value exactly.
	FilterAttr FilterKind = iota
	// FilterAttrPattern matches an attribute value against a regexp.
	FilterAttrPattern
	// FilterClass matches one whitespace-separated token of the class attribute.
	FilterClass
	// FilterText matches the element's trimmed text exactly.
	FilterText
)

// Filter is one condition an element must satisfy in Find.
type Filter struct {
	Kind    FilterKind
	Name    string
	Value   string
	Pattern *regexp.Regexp
}

// Attr matches elements whose attribute name equals value.
func Attr(name, value string) Filter {
	return Filter{Kind: FilterAttr, Name: name, Value: value}
}

// AttrMatch matches elements whose attribute name matches pattern.
func AttrMatch(name string, pattern *regexp.Regexp) Filter {
	return Filter{Kind: FilterAttrPattern, Name: name, Pattern: pattern}
}

// Class matches elements carrying the class name.
func Class(name string) Filter {
	return Filter{Kind: FilterClass, Name: "class", Value: name}
}

// Text matches elements whose trimmed text equals value.
func Text(value string) Filter {
	return Filter{Kind: FilterText, Value: value}
}

// String renders the filter for error messages, e.g. `.toctree-wrapper`
// or `href~=/pdf-a4\.zip$/`.
func (f Filter) String() string {
	switch f.Kind {
	case FilterAttrPattern:
		return fmt.Sprintf("%s~=/%s/", f.Name, f.Pattern)
	case FilterClass:
		return "." + f.Value
	case FilterText:
		return fmt.Sprintf("text=%q", f.Value)
	default:
		return fmt.Sprintf("%s=%q", f.Name, f.Value)
	}
}

// Match reports whether the first element of s satisfies the filter.
func (f Filter) Match(s *goquery.Selection) bool {
	switch f.Kind {
	case FilterAttr:
		v, ok := s.Attr(f.Name)
		return ok && v == f.Value
	case FilterAttrPattern:
		v, ok := s.Attr(f.Name)
		return ok && f.Pattern != nil && f.Pattern.MatchString(v)
	case FilterClass:
		v, ok := s.Attr("class")
		if !ok {
			return false
		}
		for _, token := range strings.Fields(v) {
			if token == f.Value {
				return true
			}
		}
		return false
	case FilterText:
		return strings.TrimSpace(s.Text()) == f.Value
	}
	return false
}

// Find returns the first descendant of root, in document order, named tag
// and satisfying every filter. It never returns an empty selection: a
// missing element is reported as *ElementNotFoundError.
func Find(root *goquery.Selection, tag string, filters ...Filter) (*goquery.Selection, error) {
	var found *goquery.Selection
	if root != nil {
		root.Find(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			for _, f := range filters {
				if !f.Match(s) {
					return true
				}
			}
			found = s
			return false
		})
	}

	if found == nil {
		return nil, &ElementNotFoundError{Tag: tag, Filters: filters}
	}
	return found, nil
}
