// Package sandbox confines untrusted paths to a fixed root directory and
// records an audit trail of the lookups made against it.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/config"
)

// ResolvePath canonicalizes requestedPath against root and returns the real
// path only if it lies inside the real root.
//
// Relative paths are joined to root; absolute paths are used as given. Both
// sides have symlinks and "." / ".." segments resolved before the containment
// check, so a link inside root pointing elsewhere is rejected. A target that
// does not exist is still classified by its lexical position. Failures are
// *SecurityError values wrapping ErrPathSecurity or ErrPathResolve.
func ResolvePath(requestedPath string, root string) (string, error) {
	if len(requestedPath) > config.MaxPathLength {
		return "", &SecurityError{Op: "resolve", Path: requestedPath[:64] + "...", Err: fmt.Errorf("%w: path too long", ErrPathSecurity)}
	}
	if strings.ContainsRune(requestedPath, 0) {
		return "", &SecurityError{Op: "resolve", Path: requestedPath, Err: fmt.Errorf("%w: NUL byte in path", ErrPathSecurity)}
	}

	realRoot, err := Canonicalize(root)
	if err != nil {
		return "", &SecurityError{Op: "resolve root", Path: root, Err: fmt.Errorf("%w: %v", ErrPathResolve, err)}
	}

	target := filepath.Clean(requestedPath)
	if !filepath.IsAbs(target) {
		target = filepath.Join(realRoot, target)
	}

	realPath, err := Canonicalize(target)
	if err != nil {
		if !lexicallyInside(root, realRoot, target) {
			return "", &SecurityError{Op: "resolve", Path: requestedPath, Err: fmt.Errorf("%w: path is not within root", ErrPathSecurity)}
		}
		return "", &SecurityError{Op: "resolve", Path: requestedPath, Err: fmt.Errorf("%w: %v", ErrPathResolve, err)}
	}

	if !Contains(realRoot, realPath) {
		return "", &SecurityError{Op: "resolve", Path: requestedPath, Err: fmt.Errorf("%w: path is not within root", ErrPathSecurity)}
	}

	return realPath, nil
}

// lexicallyInside reports whether the cleaned target sits under root as
// given or under its canonical form. Used when target cannot be resolved.
func lexicallyInside(root, realRoot, target string) bool {
	if Contains(realRoot, target) {
		return true
	}
	absRoot, err := filepath.Abs(root)
	return err == nil && Contains(filepath.Clean(absRoot), target)
}

// Canonicalize returns the absolute path with every symlink resolved.
// The path must exist.
func Canonicalize(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(absPath)
}

// Contains reports whether target equals root or lies below it. Both paths
// must already be canonical. Comparison is per path element, so /data does
// not contain /data-backup.
func Contains(root, target string) bool {
	if target == root {
		return true
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
