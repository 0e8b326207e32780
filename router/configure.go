package router

import (
	"errors"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/routelab/logroute/config"
	"github.com/routelab/logroute/core"
	"github.com/routelab/logroute/emitter"
	"github.com/routelab/logroute/filter"
	"github.com/routelab/logroute/formatter"
)

// ErrAlreadyInstalled indicates a router is already published as the
// process-wide active router. The conflicting call is a no-op; the
// previously installed router keeps functioning.
var ErrAlreadyInstalled = errors.New("log router already installed")

// active is the process-wide single-assignment router slot.
var active atomic.Pointer[Router]

// diag is the side channel for configuration-time diagnostics. Routing
// problems are never raised to emit callers; they surface here.
var diag atomic.Pointer[zap.Logger]

func init() {
	diag.Store(newDefaultDiagnostics())
}

func newDefaultDiagnostics() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	))
}

// SetDiagnostics replaces the diagnostics logger. Passing nil restores
// the default stderr logger.
func SetDiagnostics(l *zap.Logger) {
	if l == nil {
		l = newDefaultDiagnostics()
	}
	diag.Store(l)
}

func diagnostics() *zap.Logger {
	return diag.Load()
}

// New compiles a configuration into a Router without publishing it.
//
// An absent or empty handler list synthesizes the default console
// handler. A handler that fails to compile (invalid spec, unopenable
// file) is skipped with a diagnostic; it never aborts the rest of the
// configuration. Should every handler fail, the default console handler
// is substituted so the process is never left with zero handlers and no
// diagnostic.
func New(cfg *config.Config) (*Router, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	specs := cfg.Handlers
	if len(specs) == 0 {
		specs = []config.HandlerSpec{config.DefaultHandler(cfg.DefaultLevel())}
	}

	handlers := make([]*Handler, 0, len(specs))
	for i, spec := range specs {
		h, err := buildHandler(spec)
		if err != nil {
			diagnostics().Warn("skipping log handler",
				zap.Int("handler", i),
				zap.Error(err))
			continue
		}
		handlers = append(handlers, h)
	}

	if len(handlers) == 0 {
		diagnostics().Warn("no usable log handlers, falling back to default console handler")
		h, err := buildHandler(config.DefaultHandler(cfg.DefaultLevel()))
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}

	return &Router{handlers: handlers}, nil
}

// buildHandler compiles one handler spec into its (filter, formatter,
// emitter) triple.
func buildHandler(spec config.HandlerSpec) (*Handler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	colored := spec.Formatter.IsColored()
	switch spec.Emitter.Type {
	case config.EmitterConsole:
		// Honor the request only on an interactive terminal.
		if colored && !streamIsTerminal(spec.Emitter.Config.Stream) {
			colored = false
		}
	case config.EmitterFile:
		// File bytes never carry ANSI styling.
		colored = false
	}

	em, err := emitter.NewFromSpec(spec.Emitter)
	if err != nil {
		return nil, err
	}

	var fm formatter.Formatter
	switch spec.Formatter.Type {
	case config.FormatterPlain:
		fm = formatter.NewPlainFormatter(colored)
	case config.FormatterJSON:
		fm = formatter.NewJSONFormatter(formatter.JSONConfig{Colored: colored})
	}

	return &Handler{
		filter:    filter.Compile(spec.Matchers),
		formatter: fm,
		emitter:   em,
	}, nil
}

func streamIsTerminal(stream config.StreamType) bool {
	f := os.Stdout
	if stream == config.StreamStderr {
		f = os.Stderr
	}
	return term.IsTerminal(int(f.Fd()))
}

// Install publishes r as the process-wide active router. Publication is
// single-assignment: the first call wins, and every later call is a
// diagnosed no-op returning ErrAlreadyInstalled while the installed
// router keeps functioning.
func Install(r *Router) error {
	if r == nil {
		return errors.New("cannot install nil router")
	}
	if !active.CompareAndSwap(nil, r) {
		diagnostics().Warn("log router already installed, keeping existing configuration")
		return ErrAlreadyInstalled
	}
	return nil
}

// Active returns the installed router, or nil when none is installed.
func Active() *Router {
	return active.Load()
}

// Configure compiles cfg and attempts to publish the result. On an
// install conflict the freshly built router is closed (releasing any
// files it opened) and the already-active router is returned alongside
// ErrAlreadyInstalled.
func Configure(cfg *config.Config) (*Router, error) {
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := Install(r); err != nil {
		r.Close()
		return Active(), err
	}
	return r, nil
}

// Emit routes one event through the active router. It is fire-and-
// forget: emit never fails observably, and is a no-op when no router is
// installed.
func Emit(category string, pid, tid int64, level core.WireLevel, function, file string, line int, message string) {
	r := Active()
	if r == nil {
		return
	}

	event := core.GetEvent()
	event.Category = category
	event.PID = pid
	event.TID = tid
	event.Level = level
	event.Function = function
	event.File = file
	event.Line = line
	event.Message = message

	r.Dispatch(event)
	core.PutEvent(event)
}

// Log is a convenience wrapper over Emit that fills in the process id
// and the caller's function, file, and line automatically.
func Log(category string, level core.WireLevel, message string) {
	if Active() == nil {
		return
	}

	caller := core.GetCaller(2)
	Emit(category, int64(os.Getpid()), 0, level, caller.Function, caller.File, caller.Line, message)
}

// Shutdown drains and closes the active router's emitters. Buffered
// lines are durably written before it returns. The router stays
// installed; later emits are best-effort against closed emitters.
func Shutdown() error {
	r := Active()
	if r == nil {
		return nil
	}
	return r.Close()
}
