package sync

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// shouldExclude reports whether relativePath matches any exclude
// pattern. Patterns use doublestar glob syntax and are tried against:
//   - the slash-normalized relative path: build/*, **/testdata/**
//   - every path segment, for bare patterns: *.tmp, .git, node_modules
//
// A trailing slash on a pattern is ignored, so ".git/" behaves like ".git".
// Invalid patterns are skipped.
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel := filepath.ToSlash(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		glob := strings.TrimSuffix(filepath.ToSlash(pattern), "/")

		if matched, err := doublestar.Match(glob, rel); err == nil && matched {
			return true
		}

		// Bare patterns also match individual path segments, which
		// excludes a directory together with everything under it
		if !strings.Contains(glob, "/") {
			for _, segment := range strings.Split(rel, "/") {
				if matched, err := doublestar.Match(glob, segment); err == nil && matched {
					return true
				}
			}
		}
	}

	return false
}
