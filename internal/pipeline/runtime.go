package pipeline

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/phrazzld/contacts-api/internal/redact"
)

// ShutdownHook is invoked once when the process must stop. reason is the
// error that triggered it.
type ShutdownHook func(reason error)

// Runtime owns the shutdown flag shared by every request.
type Runtime struct {
	shuttingDown atomic.Bool
	once         sync.Once
	hook         ShutdownHook
	log          *slog.Logger
}

// NewRuntime creates a Runtime that calls hook on the first Shutdown. A nil
// hook only sets the flag.
func NewRuntime(hook ShutdownHook, log *slog.Logger) *Runtime {
	if log == nil {
		log = slog.Default()
	}
	return &Runtime{hook: hook, log: log.With("component", "runtime")}
}

// ShuttingDown reports whether Shutdown has been called.
func (rt *Runtime) ShuttingDown() bool {
	return rt.shuttingDown.Load()
}

// Shutdown sets the shutdown flag and runs the hook. Only the first call has
// any effect.
func (rt *Runtime) Shutdown(reason error) {
	rt.once.Do(func() {
		rt.shuttingDown.Store(true)
		rt.log.Error("shutting down after non-operational error", "reason", redact.Error(reason))
		if rt.hook != nil {
			rt.hook(reason)
		}
	})
}
