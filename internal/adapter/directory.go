package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/amishk599/pipelines/internal/model"
)

// DefaultDirectoryURL is the public university directory.
const DefaultDirectoryURL = "http://universities.hipolabs.com"

// DirectoryAdapter searches the public university directory.
type DirectoryAdapter struct {
	baseURL string
	client  *http.Client
}

// NewDirectoryAdapter creates an adapter for the directory at baseURL
// (DefaultDirectoryURL when empty).
func NewDirectoryAdapter(baseURL string, client *http.Client) *DirectoryAdapter {
	if baseURL == "" {
		baseURL = DefaultDirectoryURL
	}
	return &DirectoryAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// SearchSchools returns the schools whose name contains name. An empty name
// returns no schools without a request.
func (a *DirectoryAdapter) SearchSchools(ctx context.Context, name string) ([]model.School, error) {
	if name == "" {
		return nil, nil
	}

	u := a.baseURL + "/search?" + url.Values{"name": {name}}.Encode()
	req, err := newJSONRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("school search for %q: %w", name, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("school search for %q: %w", name, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var schools []model.School
	if err := json.NewDecoder(resp.Body).Decode(&schools); err != nil {
		return nil, &model.ShapeError{Source: "school search", Err: err}
	}
	return schools, nil
}
