// Package pattern provides small regular-expression convenience wrappers
// shared by the engine and its callers.
package pattern

import (
	"regexp"
	"sync"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// cache holds compiled expressions keyed by their pattern text.
var cache sync.Map // string -> *regexp.Regexp

// Match reports whether text matches pattern. Compiled expressions are
// cached, so repeated calls with the same pattern compile once.
func Match(pattern, text string) (bool, error) {
	if re, ok := cache.Load(pattern); ok {
		return re.(*regexp.Regexp).MatchString(text), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	cache.Store(pattern, re)

	return re.MatchString(text), nil
}

// IsIdentifier reports whether text is a valid identifier: a letter or
// underscore followed by letters, digits, or underscores.
func IsIdentifier(text string) bool {
	return identifierRegex.MatchString(text)
}
