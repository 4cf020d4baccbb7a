package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataUnavailable means the indicator dataset could not be read or parsed
	ErrDataUnavailable = errors.New("indicator dataset unavailable")

	// ErrRegionNotFound means no dataset record matches the requested region
	ErrRegionNotFound = errors.New("region not found")

	// ErrInferenceFailure means the classifier could not produce a probability
	ErrInferenceFailure = errors.New("model inference failed")
)

// FieldError describes one out-of-domain input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is raised at the transport boundary and never by the scoring engine
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
