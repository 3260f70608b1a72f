package adapter

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/amishk599/pipelines/internal/model"
)

// ErrNoHost is returned when no backend host is configured.
var ErrNoHost = errors.New("no API host configured")

//go:embed schema/profiles.json
var profilesSchemaJSON []byte

var profilesSchema = mustSchema(profilesSchemaJSON)

func mustSchema(raw []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compiling embedded schema: %v", err))
	}
	return s
}

// PipelineAdapter talks to the Pipelines backend.
type PipelineAdapter struct {
	host   string
	client *http.Client
}

// NewPipelineAdapter creates an adapter for the backend at host.
func NewPipelineAdapter(host string, client *http.Client) *PipelineAdapter {
	return &PipelineAdapter{
		host:   strings.TrimRight(host, "/"),
		client: client,
	}
}

// RandomProfiles fetches size random profiles for the discovery feed. The
// payload is checked against the profile schema before decoding and every
// user-supplied text field is reduced to plain text.
func (a *PipelineAdapter) RandomProfiles(ctx context.Context, size int) ([]model.Profile, error) {
	if a.host == "" {
		return nil, fmt.Errorf("random profiles: %w", ErrNoHost)
	}
	if size <= 0 {
		return nil, fmt.Errorf("random profiles: batch size must be positive, got %d", size)
	}

	u := fmt.Sprintf("%s/api/pipeline/random/%d", a.host, size)
	req, err := newJSONRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("random profiles: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("random profiles: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("random profiles: reading body: %w", err)
	}

	result, err := profilesSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, &model.ShapeError{Source: "random profiles", Err: err}
	}
	if !result.Valid() {
		fields := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			fields = append(fields, e.Field()+": "+e.Description())
		}
		return nil, &model.ShapeError{Source: "random profiles", Fields: fields}
	}

	var profiles []model.Profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, &model.ShapeError{Source: "random profiles", Err: err}
	}

	for i := range profiles {
		sanitizeProfile(&profiles[i])
	}
	return profiles, nil
}

func sanitizeProfile(p *model.Profile) {
	p.FirstName = plainText(p.FirstName)
	p.LastName = plainText(p.LastName)
	for i := range p.Pipeline {
		e := &p.Pipeline[i]
		e.Company = plainText(e.Company)
		e.Title = plainText(e.Title)
		e.Date = plainText(e.Date)
	}
}
