package sandbox

import "fmt"

// Error kinds produced by the path guard
var (
	ErrPathSecurity = fmt.Errorf("PATH_SECURITY")
	ErrPathResolve  = fmt.Errorf("PATH_RESOLVE")
)

// SecurityError wraps guard failures with the operation and offending path
type SecurityError struct {
	Op   string
	Path string
	Err  error
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security violation in %s for path %s: %v", e.Op, e.Path, e.Err)
}

func (e *SecurityError) Unwrap() error {
	return e.Err
}
