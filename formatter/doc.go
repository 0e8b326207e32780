// Package formatter renders log events into output lines.
//
// Two formatters exist: PlainFormatter produces a human-readable line
// with a stable field order, and JSONFormatter produces one
// line-delimited JSON object per event with an overridable field-name
// mapping. Both write exactly one trailing newline and never fail for
// well-formed events; fields that cannot be computed degrade to their
// raw values.
package formatter
