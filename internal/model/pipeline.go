package model

import "context"

// Experience is one entry of a user's pipeline. Date is a display range such
// as "September 2020 - Present" and is always derived from the form inputs.
type Experience struct {
	Company string `json:"company"`
	Title   string `json:"title"`
	Date    string `json:"date"`
}

// Profile is a user as returned by the discovery endpoint.
type Profile struct {
	ID        string       `json:"_id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Pfp       string       `json:"pfp"`
	Anonymous bool         `json:"anonymous"`
	Pipeline  []Experience `json:"pipeline"`
}

// DisplayName is the name shown on a pipeline card.
func (p Profile) DisplayName() string {
	if p.Anonymous {
		return "Anonymous"
	}
	return p.FirstName + " " + p.LastName
}

// School is a university directory entry. Name is the key within a result set.
type School struct {
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	AlphaTwoCode  string   `json:"alpha_two_code"`
	StateProvince *string  `json:"state-province"`
	Domains       []string `json:"domains"`
	WebPages      []string `json:"web_pages"`
}

// Company is an entry of the bundled company directory.
type Company struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Logo string `json:"logo" yaml:"logo"`
}

// SchoolSearcher looks schools up by name.
type SchoolSearcher interface {
	SearchSchools(ctx context.Context, name string) ([]School, error)
}

// ProfileFetcher fetches a batch of random profiles for the discovery feed.
type ProfileFetcher interface {
	RandomProfiles(ctx context.Context, size int) ([]Profile, error)
}

// ErrorReporter is the diagnostic channel for failed network operations.
// Nothing reported here reaches the user interface.
type ErrorReporter interface {
	ReportError(source string, err error)
}
