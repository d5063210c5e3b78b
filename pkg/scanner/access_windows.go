//go:build windows

package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

var defaultExecutableExtensions = []string{".com", ".exe", ".bat", ".cmd"}

// IsExecutable reports whether path has an extension listed in PATHEXT.
// Windows has no execute bit; PATHEXT is what the shell consults.
func IsExecutable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range executableExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

func executableExtensions() []string {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		return defaultExecutableExtensions
	}

	var exts []string
	for _, e := range strings.Split(strings.ToLower(pathext), ";") {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
