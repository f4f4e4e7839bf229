// Package schema validates the independent facets of an HTTP request
// (headers, path parameters, query string, body) against per-route schemas.
package schema

import (
	"fmt"
)

// Options tunes a single Validate call.
type Options struct {
	// AllowUnknown permits keys the schema does not declare.
	AllowUnknown bool
	// Convert coerces string input (headers, path and query values) into the
	// declared field types.
	Convert bool
}

// Schema validates one facet of a request.
type Schema interface {
	// Validate checks data against the schema. It returns a *ValidationError
	// when data breaks a rule. Any other error means the schema itself could
	// not be evaluated.
	Validate(data any, opts Options) error
}

// ValidationError describes the first rule a facet broke.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, rule, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}
