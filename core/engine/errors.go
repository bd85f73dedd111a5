package engine

import "fmt"

// FatalError marks backend or persistence trouble that makes further
// reconciliation unsafe. It aborts the current cycle and, in the
// daemon, terminates the process.
type FatalError struct {
	// Op names the failed operation.
	Op string
	// Err is the underlying error.
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(op string, err error) error {
	return &FatalError{Op: op, Err: err}
}

// Per-recipe error messages. These are recorded on the recipe, shown to
// the user, and cleared at the start of every full matching pass.
const (
	errNoPattern        = "no crafting pattern"
	errNoPatternFound   = "no crafting pattern found"
	errMultiplePatterns = "multiple crafting patterns"
	errCanceled         = "canceled"
)
