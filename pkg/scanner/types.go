package scanner

// Outcome records how a listing ended. Callers outside this package only
// ever see Names; Outcome and Reason exist for logs and the audit trail.
type Outcome int

const (
	// OutcomeListed means the directory was read
	OutcomeListed Outcome = iota
	// OutcomeRejected means the path escaped the root
	OutcomeRejected
	// OutcomeUnavailable means the path was missing, not a directory, or unreadable
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeListed:
		return "listed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result holds the executables found in one directory. Names is never nil.
// A rejected or unreadable directory gives an empty Names, not an error.
type Result struct {
	Names   []string
	Outcome Outcome
	Reason  error
}

// OK reports whether the directory was actually read
func (r Result) OK() bool {
	return r.Outcome == OutcomeListed
}
