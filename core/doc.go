// Package core defines the shared types used across the logroute engine.
//
// It provides the Level type for severity filtering, the wider WireLevel
// carried by callers at the emit boundary (including the Invalid, Fatal,
// and Mandatory aliases and their fixed mapping onto filter ranks), and
// the Event type that represents a single log event.
//
// Event objects are pooled via sync.Pool to keep the emit path
// allocation-free. Callers get an Event with GetEvent and must return it
// with PutEvent once dispatch has completed; events are never retained
// by the router or its emitters.
package core
