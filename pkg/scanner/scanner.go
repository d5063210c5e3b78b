// Package scanner lists the executable regular files directly inside a
// directory below the sandbox root.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/sandbox"
)

// Scanner lists executables below a fixed, canonical root
type Scanner struct {
	root string
	log  hclog.Logger
}

// New creates a Scanner for root. The root is canonicalized once here and
// must exist.
func New(root string, logger hclog.Logger) (*Scanner, error) {
	realRoot, err := sandbox.Canonicalize(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve root directory: %w", err)
	}
	info, err := os.Stat(realRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", realRoot)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Scanner{
		root: realRoot,
		log:  logger,
	}, nil
}

// Root returns the canonical root directory
func (s *Scanner) Root() string {
	return s.root
}

// List returns the executables directly inside requestedPath, which is
// interpreted relative to the root.
func (s *Scanner) List(requestedPath string) Result {
	start := time.Now()
	result := listExecutables(s.root, requestedPath)

	s.log.Trace("scan finished",
		"path", requestedPath,
		"outcome", result.Outcome.String(),
		"count", len(result.Names),
		"reason", result.Reason,
		"duration", time.Since(start),
	)
	return result
}

// ListExecutables is List for a one-off root
func ListExecutables(root, requestedPath string) Result {
	realRoot, err := sandbox.Canonicalize(root)
	if err != nil {
		return unavailable(err)
	}
	return listExecutables(realRoot, requestedPath)
}

func listExecutables(realRoot, requestedPath string) Result {
	dir, err := sandbox.ResolvePath(requestedPath, realRoot)
	if err != nil {
		if errors.Is(err, sandbox.ErrPathSecurity) {
			return Result{Names: []string{}, Outcome: OutcomeRejected, Reason: err}
		}
		return unavailable(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return unavailable(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(realRoot, path, entry) {
			continue
		}
		if IsExecutable(path) {
			names = append(names, entry.Name())
		}
	}

	return Result{Names: names, Outcome: OutcomeListed}
}

// isRegularFile reports whether entry is a regular file. Symlinks count only
// when their target is a regular file inside root.
func isRegularFile(realRoot, path string, entry fs.DirEntry) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}

	target, err := sandbox.Canonicalize(path)
	if err != nil || !sandbox.Contains(realRoot, target) {
		return false
	}
	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func unavailable(err error) Result {
	return Result{Names: []string{}, Outcome: OutcomeUnavailable, Reason: err}
}
