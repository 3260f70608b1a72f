package model

import (
	"fmt"
)

// HTTPError is a non-success response from a remote collaborator. Message
// holds the server-provided error when the body was JSON, otherwise it is the
// generic status message.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ShapeError reports a success response whose body did not have the expected
// shape.
type ShapeError struct {
	Source string
	Fields []string // "field: problem" entries
	Err    error
}

func (e *ShapeError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: unexpected response shape: %v", e.Source, e.Fields)
	}
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Source, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
