package regexast

import "fmt"

// TypeError signals that a regex tree did not have the shape an operation
// required, in particular the alternation-only interior that ReplaceSym
// requires on the path from an atom's tree root to any of its symbol
// leaves (see the Design Notes on the alternation-only invariant).
type TypeError struct {
	Kind    string
	Message string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("regex type error (%v): %v", e.Kind, e.Message)
}
