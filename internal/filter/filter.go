package filter

import (
	"strings"

	"github.com/amishk599/pipelines/internal/model"
)

// NamePrefixFilter matches names that start with a query, case-insensitively.
// An empty query matches nothing so an untouched input never lists the whole
// directory.
type NamePrefixFilter struct {
	prefix string
}

// NewNamePrefixFilter returns a filter for the given query.
func NewNamePrefixFilter(query string) *NamePrefixFilter {
	return &NamePrefixFilter{prefix: strings.ToLower(query)}
}

// Match returns true if name starts with the query.
func (f *NamePrefixFilter) Match(name string) bool {
	if f.prefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(name), f.prefix)
}

// Companies returns the companies whose name starts with query, in their
// original order.
func Companies(query string, all []model.Company) []model.Company {
	f := NewNamePrefixFilter(query)
	matched := make([]model.Company, 0)
	for _, c := range all {
		if f.Match(c.Name) {
			matched = append(matched, c)
		}
	}
	return matched
}
