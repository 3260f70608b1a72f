package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/amishk599/pipelines/internal/model"
)

// newJSONRequest builds a GET request carrying the JSON content type both
// remote services expect.
func newJSONRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// checkResponse turns a non-2xx response into a *model.HTTPError. A JSON body
// contributes its "error" field as the message; any other body falls back to
// the status code.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return &model.HTTPError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding error body: %w", err)}
		}
		return &model.HTTPError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	return &model.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP error! Status: %d", resp.StatusCode),
	}
}
