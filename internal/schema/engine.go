package schema

import (
	"errors"
	"fmt"

	"github.com/phrazzld/contacts-api/internal/apperr"
)

// Facet labels used in validation messages.
const (
	LabelHeaders = "Headers"
	LabelParams  = "URL Parameters"
	LabelQuery   = "URL Query"
	LabelBody    = "Request Body"
)

// RouteSchemaSet holds the optional schema for each request facet of one
// route. It is built at route registration and shared read-only afterward.
type RouteSchemaSet struct {
	Headers Schema
	Params  Schema
	Query   Schema
	Body    Schema
}

// Facets is the request data the engine validates.
type Facets struct {
	Headers map[string]any
	Params  map[string]any
	Query   map[string]any
	// Body is the decoded JSON body, nil when the request carried none.
	Body any
}

type facetCheck struct {
	label  string
	schema Schema
	data   any
	opts   Options
}

// Validate checks each configured facet in the fixed order headers, params,
// query, body and stops at the first failure. A rule violation is reported as
// InvalidInput; a schema that fails for any other reason yields UnknownError.
func Validate(f Facets, set *RouteSchemaSet) error {
	if set == nil {
		return nil
	}

	body := f.Body
	if body == nil {
		body = map[string]any{}
	}

	checks := []facetCheck{
		{LabelHeaders, set.Headers, f.Headers, Options{AllowUnknown: true, Convert: true}},
		{LabelParams, set.Params, f.Params, Options{Convert: true}},
		{LabelQuery, set.Query, f.Query, Options{Convert: true}},
		{LabelBody, set.Body, body, Options{}},
	}

	for _, c := range checks {
		if c.schema == nil {
			continue
		}
		if err := c.schema.Validate(c.data, c.opts); err != nil {
			return classify(c.label, err)
		}
	}
	return nil
}

func classify(label string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return apperr.InvalidInputError(fmt.Sprintf("Invalid %s - %s", label, verr.Message), err)
	}
	return apperr.UnknownErr(fmt.Sprintf("Failed to evaluate %s schema", label), err)
}
