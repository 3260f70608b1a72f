// Package companies holds the company directory bundled with the binary.
package companies

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/pipelines/internal/model"
)

//go:embed companies.yaml
var bundled []byte

// Directory is a fixed list of companies. It is never mutated after load.
type Directory struct {
	companies []model.Company
}

// Load decodes the bundled directory.
func Load() (*Directory, error) {
	return Parse(bundled)
}

// Parse decodes a YAML list of companies and rejects blank or duplicate names.
func Parse(data []byte) (*Directory, error) {
	var list []model.Company
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse company directory: %w", err)
	}

	seen := make(map[string]bool, len(list))
	for i, c := range list {
		if c.Name == "" {
			return nil, fmt.Errorf("company directory entry %d: name is required", i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("company directory: duplicate name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return &Directory{companies: list}, nil
}

// All returns a copy of the directory in bundled order.
func (d *Directory) All() []model.Company {
	out := make([]model.Company, len(d.companies))
	copy(out, d.companies)
	return out
}

// Len returns the number of companies.
func (d *Directory) Len() int {
	return len(d.companies)
}
