package search

import (
	"fmt"

	"github.com/amishk599/pipelines/internal/filter"
	"github.com/amishk599/pipelines/internal/model"
)

// LocalField is a company input backed by the bundled directory. Filtering is
// synchronous on every keystroke.
type LocalField struct {
	all      []model.Company
	onSearch func(name string)
	query    string
	results  []model.Company
}

// NewLocalField creates a field over all. onSearch receives the chosen name.
func NewLocalField(all []model.Company, onSearch func(name string)) *LocalField {
	return &LocalField{all: all, onSearch: onSearch}
}

// Input replaces the query and refilters.
func (f *LocalField) Input(query string) {
	f.query = query
	f.results = filter.Companies(query, f.all)
}

// Select reports the i-th candidate and clears the query and candidates.
func (f *LocalField) Select(i int) error {
	if i < 0 || i >= len(f.results) {
		return fmt.Errorf("select company %d: index out of range [0,%d)", i, len(f.results))
	}
	name := f.results[i].Name
	f.query = ""
	f.results = nil
	if f.onSearch != nil {
		f.onSearch(name)
	}
	return nil
}

// Query returns the current input text.
func (f *LocalField) Query() string { return f.query }

// Results returns the current candidates.
func (f *LocalField) Results() []model.Company { return f.results }
