package router

import (
	"github.com/routelab/logroute/core"
	"github.com/routelab/logroute/emitter"
	"github.com/routelab/logroute/filter"
	"github.com/routelab/logroute/formatter"
)

// Handler is the unit of routing: a compiled filter, a formatter, and
// an emitter. Handlers are immutable once built.
type Handler struct {
	filter    *filter.Filter
	formatter formatter.Formatter
	emitter   emitter.Emitter
}

// NewHandler assembles a handler from its compiled parts.
func NewHandler(f *filter.Filter, fm formatter.Formatter, em emitter.Emitter) *Handler {
	return &Handler{filter: f, formatter: fm, emitter: em}
}

// handle evaluates the filter and, on acceptance, renders and delivers
// the event. Rendering and delivery failures never reach the producer.
func (h *Handler) handle(event *core.Event) {
	sev := event.Level.Severity()
	if !h.filter.Accepts(event.Category, sev) {
		return
	}

	line, err := h.formatter.Format(event)
	if err != nil {
		return
	}
	h.emitter.Write(sev, line)
}

// Router owns an ordered list of handlers and dispatches each event to
// every handler whose filter accepts it. The router is read-only after
// construction and safe for unsynchronized concurrent dispatch.
type Router struct {
	handlers []*Handler
}

// NewRouter builds a router from pre-assembled handlers.
func NewRouter(handlers ...*Handler) *Router {
	return &Router{handlers: handlers}
}

// Dispatch hands one event to every handler independently. Handlers do
// not short-circuit each other: an event may be accepted by zero, one,
// or many handlers, and each renders separately.
func (r *Router) Dispatch(event *core.Event) {
	for _, h := range r.handlers {
		h.handle(event)
	}
}

// NumHandlers returns the number of compiled handlers.
func (r *Router) NumHandlers() int {
	return len(r.handlers)
}

// Close drains and closes every emitter. For file emitters this blocks
// until all previously enqueued lines are durably written.
func (r *Router) Close() error {
	var lastErr error
	for _, h := range r.handlers {
		if err := h.emitter.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
