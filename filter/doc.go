// Package filter compiles a handler's matcher list into a decision
// predicate over (category, severity).
//
// The predicate is built directly as a data structure; there is no
// round-trip through a textual filter language, so matcher semantics
// are explicit and independently testable. Specificity is additive and
// fail-closed: a filter whose matchers are all categorized rejects any
// event whose category is not listed.
package filter
