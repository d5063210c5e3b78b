//go:build !windows

package scanner

import "golang.org/x/sys/unix"

// IsExecutable reports whether the process may execute path, using the
// access(2) rules for its credentials.
func IsExecutable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
