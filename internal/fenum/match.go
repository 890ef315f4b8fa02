package fenum

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// doublestar gives `[...]`, `{...}` and backslash escapes a meaning the
// emulated wildcard syntax does not have. Escape those so only `*` and
// `?` stay special.
func translatePattern(pattern string) string {
	if !strings.ContainsAny(pattern, `\[]{}`) {
		return pattern
	}
	var b strings.Builder
	b.Grow(len(pattern) + 4)
	for _, r := range pattern {
		switch r {
		case '\\', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Match reports whether name matches the wildcard pattern. `*` matches
// zero or more characters, `?` exactly one; the whole name must match and
// matching is case-sensitive, per host filesystem semantics.
func Match(name, pattern string) bool {
	ok, err := doublestar.Match(translatePattern(pattern), name)
	if err != nil {
		return false
	}
	return ok
}
