// Package exclude matches paths against gitignore-style exclude patterns.
package exclude

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Matcher reports whether a path, relative to the scan root, is excluded.
// The zero value and a nil *Matcher exclude nothing.
type Matcher struct {
	gi *ignore.GitIgnore
}

// New compiles patterns. Blank lines and "#" comments are ignored; a leading
// "!" re-includes paths excluded by an earlier pattern.
func New(patterns []string) *Matcher {
	var kept []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" && !strings.HasPrefix(p, "#") {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return &Matcher{}
	}
	return &Matcher{gi: ignore.CompileIgnoreLines(kept...)}
}

// Match reports whether rel is excluded, and the pattern that excluded it.
func (m *Matcher) Match(rel string) (bool, string) {
	if m == nil || m.gi == nil {
		return false, ""
	}
	matched, how := m.gi.MatchesPathHow(filepath.ToSlash(rel))
	if !matched || how == nil {
		return false, ""
	}
	return true, how.Line
}
