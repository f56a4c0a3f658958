package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath      = errors.New("content: path has no node identifier")
	ErrUpstream         = errors.New("content: upstream request failed")
	ErrMalformedContent = errors.New("content: malformed node document")
	ErrSuperseded       = errors.New("content: superseded by a newer navigation")
)

// PathError reports a path that does not carry a node identifier at index 3.
type PathError struct {
	Path     string
	Segments int
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %q has %d segments", ErrInvalidPath, e.Path, e.Segments)
}

func (e *PathError) Unwrap() error { return ErrInvalidPath }

// UpstreamError is returned when the backend answers with a non-2xx status.
type UpstreamError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%v: GET %s returned %d", ErrUpstream, e.URL, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// DecodeError names the part of the node document that did not match the schema.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrMalformedContent, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: %s is missing", ErrMalformedContent, e.Field)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedContent, e.Err}
	}
	return []error{ErrMalformedContent}
}
