// Package platform holds the path handling that differs between
// operating systems.
package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Characters Windows forbids in path components. The drive-letter colon
// is handled separately.
const windowsInvalidChars = `<>:"|?*`

// NormalizePath cleans a path for the current platform. UNC prefixes
// survive the cleanup on Windows.
func NormalizePath(path string) string {
	cleaned := filepath.Clean(path)

	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, `\\`) && !strings.HasPrefix(cleaned, `\\`) {
			cleaned = `\\` + cleaned
		}
	}

	return cleaned
}

// IsUNCPath reports whether path is a Windows network share path.
func IsUNCPath(path string) bool {
	return runtime.GOOS == "windows" &&
		(strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//"))
}

// ValidatePath checks that a path is usable on the current platform.
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "empty path"}
	}

	if runtime.GOOS == "windows" && !IsUNCPath(path) {
		rest := path
		// A drive-letter colon is the only legal use of ':'
		if len(path) >= 2 && path[1] == ':' {
			rest = path[2:]
		}
		if i := strings.IndexAny(rest, windowsInvalidChars); i >= 0 {
			return &PathError{Path: path, Message: "path contains invalid character: " + string(rest[i])}
		}
	}

	return nil
}

// PathError reports a path that failed validation.
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Message)
}
