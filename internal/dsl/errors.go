package dsl

import "fmt"

type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error (%v): %v", e.Kind, e.Message)
}

// enrichSyntaxError wraps a raw participle parse error with the offending
// input line, so a failed ParseLine reports more than a bare token
// position.
func enrichSyntaxError(input string, err error) error {
	return SyntaxError{
		Kind:    "ParseError",
		Message: fmt.Sprintf("%v (input: %q)", err, input),
	}
}
