package symbol

import "fmt"

// InvariantError signals that the symbol table's internal bijection or
// atom bookkeeping has gone out of sync. Per spec §7 this is a fatal bug,
// not a recoverable condition: callers are expected to let it propagate as
// a panic rather than branch on it.
type InvariantError struct {
	Kind    string
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("symbol table invariant violated (%v): %v", e.Kind, e.Message)
}
