package pipeline

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
)

// MsgShuttingDown is returned with 503 once shutdown has been signaled.
const MsgShuttingDown = "Server is shutting down"

// Config wires a Pipeline.
type Config struct {
	Runtime  *Runtime
	Sink     *Sink
	Verifier Verifier
	// CredentialHeader names the header that carries the access token.
	CredentialHeader string
	Logger           *slog.Logger
}

// Pipeline turns Routes into http.Handlers.
type Pipeline struct {
	runtime  *Runtime
	sink     *Sink
	verifier Verifier
	header   string
	log      *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	header := cfg.CredentialHeader
	if header == "" {
		header = "x-access-token"
	}
	return &Pipeline{
		runtime:  cfg.Runtime,
		sink:     cfg.Sink,
		verifier: cfg.Verifier,
		header:   header,
		log:      log,
	}
}

// Handler returns the http.Handler for route. It panics when the route is
// incomplete, which surfaces at registration.
func (p *Pipeline) Handler(route Route) http.Handler {
	if route.Handler == nil {
		// ALLOW-PANIC: routes are registered at startup
		panic(fmt.Sprintf("pipeline: route %q has no handler", route.Name))
	}
	if route.Auth && p.verifier == nil {
		// ALLOW-PANIC: routes are registered at startup
		panic(fmt.Sprintf("pipeline: route %q requires auth but no verifier is configured", route.Name))
	}

	stages := p.stagesFor(&route)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.runtime.ShuttingDown() {
			w.Header().Set("Connection", "close")
			writeJSON(w, http.StatusServiceUnavailable, MessageBody{Message: MsgShuttingDown})
			return
		}

		log := logger.FromContextOrDefault(r.Context(), p.log)
		ex := newExchange(r, &route, pathParams(r), log)
		defer ex.runDeferred()
		if r.Body != nil {
			body := r.Body
			ex.Defer(func() { _ = body.Close() })
		}

		resp, err := run(ex, stages)
		if err != nil {
			ex.setState(Failed)
			p.sink.Handle(w, ex.Request, err)
			return
		}

		ex.setState(Responded)
		writeResponse(w, resp)
	})
}

func (p *Pipeline) stagesFor(route *Route) []Stage {
	var stages []Stage
	if route.Auth {
		stages = append(stages, authenticate(p.verifier, p.header))
	}
	if route.Schemas != nil {
		stages = append(stages, decodeBody, validate)
	}
	return stages
}

// run executes the stages and the handler, converting panics into
// UnknownError.
func run(ex *Exchange, stages []Stage) (resp *Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cause, ok := rec.(error)
			if !ok {
				cause = fmt.Errorf("%v", rec)
			}
			resp = nil
			err = apperr.UnknownErr("Unexpected failure while handling request",
				fmt.Errorf("panic in %s stage: %w", ex.State(), cause))
		}
	}()

	for _, stage := range stages {
		if err := stage(ex); err != nil {
			return nil, err
		}
	}

	ex.setState(Handling)
	resp, err = ex.Route.Handler(ex)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, apperr.UnknownErr("Handler returned neither a response nor an error")
	}
	return resp, nil
}

func pathParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
