// Package router compiles routing configurations into a live dispatch
// pipeline and owns the process-wide active router.
//
// A Router holds an ordered list of handlers, each a (filter,
// formatter, emitter) triple compiled once at configuration time. The
// compiled router is read-only, so any number of goroutines may call
// Dispatch or the package-level Emit concurrently without locks.
//
// Publication is single-assignment: the first Configure or Install call
// wins, and later attempts are diagnosed no-ops. Configuration-time
// problems (a handler that will not compile, a file that will not open)
// are reported through a zap diagnostics logger and never abort the
// rest of the configuration or reach emit callers.
//
// Shutdown drains every buffered emitter before returning; skipping it
// risks losing buffered lines on process exit.
package router
