package filter

import (
	"github.com/routelab/logroute/config"
	"github.com/routelab/logroute/core"
	"github.com/routelab/logroute/pattern"
)

// Filter is the compiled form of a handler's matcher list: a pure
// predicate over (category, severity). Filters are immutable and safe
// for unsynchronized concurrent use.
type Filter struct {
	// thresholds holds the minimum accepted severity per category.
	thresholds map[string]core.Level
	// uncategorized is the threshold for events without a category and
	// the fallthrough for events whose category is not listed. It only
	// applies when hasUncategorized is true; otherwise the filter is
	// fail-closed for unlisted categories.
	uncategorized    core.Level
	hasUncategorized bool
}

// Compile turns a matcher list into a Filter.
//
// When the same category appears in more than one matcher, the lowest
// threshold wins: matchers combine as a logical OR, so an event is
// accepted if it clears the most permissive applicable rule.
//
// A matcher with an ill-formed category (empty string or not an
// identifier) compiles to a rule that rejects everything, i.e. it is
// dropped without widening or narrowing the rest of the filter. Invalid
// matcher input never fails compilation.
func Compile(matchers []config.Matcher) *Filter {
	f := &Filter{
		thresholds: make(map[string]core.Level, len(matchers)),
	}

	for _, m := range matchers {
		if m.Category == nil {
			if !f.hasUncategorized || m.Level < f.uncategorized {
				f.uncategorized = m.Level
				f.hasUncategorized = true
			}
			continue
		}

		cat := *m.Category
		if !pattern.IsIdentifier(cat) {
			// Maximally restrictive substitute: contributes nothing.
			continue
		}

		if existing, ok := f.thresholds[cat]; !ok || m.Level < existing {
			f.thresholds[cat] = m.Level
		}
	}

	return f
}

// Accepts reports whether an event with the given category and severity
// passes the filter. An empty category means uncategorized.
//
// Listed categories are checked against their own threshold. Unlisted
// categories fall through to the uncategorized threshold only when an
// uncategorized matcher exists; otherwise they are rejected outright,
// regardless of severity.
func (f *Filter) Accepts(category string, sev core.Level) bool {
	if threshold, ok := f.thresholds[category]; ok {
		if sev >= threshold {
			return true
		}
		// A categorized rule that is too strict can still be satisfied
		// through a more permissive uncategorized rule (OR semantics).
	}

	if f.hasUncategorized {
		return sev >= f.uncategorized
	}

	return false
}
