// Package emitter delivers rendered log lines to their destinations.
//
// Two emitters exist. ConsoleEmitter writes synchronously to stdout or
// stderr under a per-stream lock so concurrent writers never interleave
// partial lines. FileEmitter appends to a file opened once at
// construction, decoupling producers from disk latency with a bounded
// queue consumed by a single background worker; the full-queue overflow
// policy is configurable per severity and drops are observable through
// atomic counters.
//
// Closing a FileEmitter drains the queue completely and syncs the file
// before returning, so no buffered line is lost on an orderly shutdown.
package emitter
