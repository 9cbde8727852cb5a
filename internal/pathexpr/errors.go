package pathexpr

import "fmt"

// TypeError signals an atom algebra operator applied across incompatible
// atom kinds or hook groupings: the Go analogue of abstract_atom's
// TypeError("'&' operator on atoms of different types").
type TypeError struct {
	Operator string
	Message  string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("type error ('%s'): %v", e.Operator, e.Message)
}

// ConstructionError signals a path or atom built from invalid arguments
// (e.g. a hook with no groupby fields, a combinator with no children).
type ConstructionError struct {
	Message string
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("construction error: %v", e.Message)
}

func kindMismatch(op string, a, b AtomKind) error {
	return TypeError{
		Operator: op,
		Message:  fmt.Sprintf("operator on atoms of different kinds (%v, %v)", a, b),
	}
}

func groupbyMismatch(op string) error {
	return TypeError{
		Operator: op,
		Message:  "operator on hooks with different groupby fields",
	}
}
