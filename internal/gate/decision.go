package gate

import "github.com/felixgeelhaar/tidygate/internal/errors"

// DecisionKind enumerates what a gate wants the run to do next
type DecisionKind int

const (
	// Continue proceeds to the next gate or to normal completion
	Continue DecisionKind = iota
	// SucceedEarly terminates the run successfully right away
	SucceedEarly
	// Fail aborts the run with the attached error
	Fail
)

// Decision is the three-valued result of a gate. Gates never terminate the
// process themselves; the top-level dispatcher acts on the decision, which
// keeps gate logic pure and testable.
type Decision struct {
	Kind DecisionKind
	Err  *errors.TidygateError
}

// ContinueRun returns a Continue decision
func ContinueRun() Decision {
	return Decision{Kind: Continue}
}

// EarlySuccess returns a SucceedEarly decision
func EarlySuccess() Decision {
	return Decision{Kind: SucceedEarly}
}

// FailWith returns a Fail decision carrying the fatal error
func FailWith(err *errors.TidygateError) Decision {
	return Decision{Kind: Fail, Err: err}
}

// DiffState is the fact supplied by the version-control collaborator.
type DiffState struct {
	HasDiff bool
	// Files holds changed paths in the order the collaborator reported
	// them.
	Files []string
}

// Count returns the number of changed files
func (d DiffState) Count() int {
	return len(d.Files)
}
