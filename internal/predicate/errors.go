package predicate

import "fmt"

type PredicateError struct {
	Kind    string
	Message string
}

func (e PredicateError) Error() string {
	return fmt.Sprintf("predicate error (%v): %v", e.Kind, e.Message)
}
