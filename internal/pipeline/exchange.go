package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/phrazzld/contacts-api/internal/schema"
	"github.com/phrazzld/contacts-api/internal/service/auth"
)

// Exchange carries one request through the pipeline.
type Exchange struct {
	Request *http.Request
	Route   *Route
	// Params holds the path parameters of the matched route.
	Params map[string]string
	// Body is the decoded JSON body, nil when the request had none or the
	// route declares no schemas.
	Body any

	identity *auth.Identity
	state    State
	deferred []func()
	log      *slog.Logger
}

func newExchange(r *http.Request, route *Route, params map[string]string, log *slog.Logger) *Exchange {
	return &Exchange{
		Request: r,
		Route:   route,
		Params:  params,
		state:   Received,
		log:     log,
	}
}

// Context returns the request context, including the identity once
// authentication succeeded.
func (ex *Exchange) Context() context.Context {
	return ex.Request.Context()
}

// State returns the current lifecycle state.
func (ex *Exchange) State() State {
	return ex.state
}

// Identity returns the authenticated principal, or nil on public routes.
func (ex *Exchange) Identity() *auth.Identity {
	return ex.identity
}

// Logger returns the request-scoped logger.
func (ex *Exchange) Logger() *slog.Logger {
	return ex.log
}

// Defer registers fn to run after the response is written. Deferred
// functions run in reverse order of registration whatever the outcome.
func (ex *Exchange) Defer(fn func()) {
	ex.deferred = append(ex.deferred, fn)
}

func (ex *Exchange) setState(s State) {
	if ex.state == s {
		return
	}
	ex.log.Debug("exchange state changed",
		slog.String("route", ex.Route.Name),
		slog.String("from", ex.state.String()),
		slog.String("to", s.String()))
	ex.state = s
}

func (ex *Exchange) setIdentity(id *auth.Identity) {
	ex.identity = id
	ex.Request = ex.Request.WithContext(withIdentity(ex.Request.Context(), id))
}

func (ex *Exchange) runDeferred() {
	for i := len(ex.deferred) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					ex.log.Error("deferred cleanup panicked", slog.Any("panic", rec))
				}
			}()
			ex.deferred[i]()
		}()
	}
	ex.deferred = nil
}

// facets collects the request data for schema validation.
func (ex *Exchange) facets() schema.Facets {
	headers := make(map[string]any, len(ex.Request.Header))
	for name, values := range ex.Request.Header {
		if len(values) > 0 {
			headers[strings.ToLower(name)] = values[0]
		}
	}

	params := make(map[string]any, len(ex.Params))
	for k, v := range ex.Params {
		params[k] = v
	}

	query := make(map[string]any)
	for k, values := range ex.Request.URL.Query() {
		switch len(values) {
		case 0:
		case 1:
			query[k] = values[0]
		default:
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = v
			}
			query[k] = list
		}
	}

	return schema.Facets{Headers: headers, Params: params, Query: query, Body: ex.Body}
}

// Bind decodes the validated body into T.
func Bind[T any](ex *Exchange) (*T, error) {
	v, err := schema.For[T]().AllowUnknown().Decode(ex.Body, schema.Options{})
	if err != nil {
		return nil, apperr.InvalidInputError(fmt.Sprintf("Invalid %s - %s", schema.LabelBody, err.Error()), err)
	}
	return v, nil
}

// BindParams decodes the path parameters into T, converting string values.
func BindParams[T any](ex *Exchange) (*T, error) {
	params := make(map[string]any, len(ex.Params))
	for k, v := range ex.Params {
		params[k] = v
	}
	v, err := schema.For[T]().AllowUnknown().Decode(params, schema.Options{Convert: true})
	if err != nil {
		return nil, apperr.InvalidInputError(fmt.Sprintf("Invalid %s - %s", schema.LabelParams, err.Error()), err)
	}
	return v, nil
}
