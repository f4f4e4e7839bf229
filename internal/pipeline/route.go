package pipeline

import (
	"net/http"

	"github.com/phrazzld/contacts-api/internal/schema"
)

// Handler is the terminal step of a route. It must return a response or an
// error; returning neither is reported as an UnknownError.
type Handler func(ex *Exchange) (*Response, error)

// Stage is one non-terminal step. Returning an error stops the run.
type Stage func(ex *Exchange) error

// Route describes one endpoint. Routes are built at startup and read-only
// afterward.
type Route struct {
	// Name identifies the route in logs and metrics.
	Name string
	// Auth requires a valid access token before anything else runs.
	Auth bool
	// Schemas validates the request facets; nil skips body decoding and
	// validation entirely.
	Schemas *schema.RouteSchemaSet
	Handler Handler
}

// Response is what a Handler produces on success.
type Response struct {
	Status int
	Body   any
	Header http.Header
}

// JSON returns a response that encodes body as JSON.
func JSON(status int, body any) *Response {
	return &Response{Status: status, Body: body}
}

// NoContent returns an empty response with status.
func NoContent(status int) *Response {
	return &Response{Status: status}
}
