package pipeline

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/redact"
	"github.com/prometheus/client_golang/prometheus"
)

// MsgInternal is the only message clients see for non-operational errors.
const MsgInternal = "Internal server error"

// Sink is the single place where errors become responses.
type Sink struct {
	runtime *Runtime
	log     *slog.Logger
	errors  *prometheus.CounterVec
}

// NewSink creates a Sink. The error counter is registered with reg when it
// is non-nil; an already registered counter is reused.
func NewSink(rt *Runtime, log *slog.Logger, reg prometheus.Registerer) *Sink {
	if log == nil {
		log = slog.Default()
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contacts_api",
		Name:      "errors_total",
		Help:      "Errors handled by the error sink, by kind.",
	}, []string{"kind", "operational"})

	if reg != nil {
		if err := reg.Register(counter); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					counter = existing
				}
			} else {
				log.Warn("failed to register error counter", "error", err)
			}
		}
	}

	return &Sink{runtime: rt, log: log, errors: counter}
}

// Handle classifies err, logs it, writes the error response and, for
// non-operational errors, signals shutdown. It never panics, and the
// shutdown signal is sent even if logging or writing fails.
func (s *Sink) Handle(w http.ResponseWriter, r *http.Request, err error) {
	ce := apperr.Classify(err)
	if ce == nil {
		ce = apperr.UnknownErr("Error sink called without an error")
	}

	defer func() {
		if !ce.Operational() {
			s.runtime.Shutdown(ce)
		}
	}()
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("error sink failed", slog.Any("panic", rec))
		}
	}()

	s.record(r, ce)
	s.errors.WithLabelValues(ce.Kind.String(), strconv.FormatBool(ce.Operational())).Inc()

	message := ce.Message
	if !ce.Operational() {
		message = MsgInternal
	}
	writeJSON(w, ce.HTTPStatus(), MessageBody{Message: message})
}

func (s *Sink) record(r *http.Request, ce *apperr.ClassifiedError) {
	attrs := []any{
		slog.String("kind", ce.Kind.String()),
		slog.Int("status", ce.HTTPStatus()),
		slog.Bool("operational", ce.Operational()),
		slog.String("message", ce.Message),
		slog.Time("occurred_at", ce.OccurredAt),
	}
	if ce.Cause != nil {
		attrs = append(attrs, slog.String("cause", redact.Error(ce.Cause)))
	}

	log := s.log
	if r != nil {
		attrs = append(attrs,
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		// The request logger installed by the trace middleware already
		// carries the trace ID.
		if reqLog := logger.FromContextOrDefault(r.Context(), nil); reqLog != nil {
			log = reqLog
		} else if id := logger.TraceID(r.Context()); id != "" {
			attrs = append(attrs, slog.String("trace_id", id))
		}
	}

	if ce.Operational() {
		log.Warn("request failed", attrs...)
		return
	}
	log.Error("request failed with non-operational error", attrs...)
}
