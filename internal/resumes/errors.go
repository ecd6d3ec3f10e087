package resumes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest marks a missing or unusable required input such as the resume id.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMalformedPatch marks resume data that is not a JSON object.
	ErrMalformedPatch = errors.New("malformed patch")
	// ErrNotFound is returned for unknown ids and for resumes owned by someone else.
	ErrNotFound = errors.New("resume not found")
	// ErrImageProcessingFailed wraps any failure of the image collaborator.
	ErrImageProcessingFailed = errors.New("image processing failed")
	// ErrValidationFailed marks a patch that would leave the resume schema-invalid.
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError is a single validation failure at a wire-level field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level details and matches ErrValidationFailed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
