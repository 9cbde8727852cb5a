// Package vfield defines the virtual-field allocator collaborator the
// stitcher uses to reserve a tag space for the compiled DFA's states (the
// "path_tag" field in the domain this module was distilled from), plus a
// reference implementation so the compiler is exercisable standalone.
package vfield

import "fmt"

// Kind is the declared type of a virtual field's values.
type Kind int

const (
	Integer Kind = iota
	String
)

func (k Kind) String() string {
	if k == String {
		return "string"
	}
	return "integer"
}

// FieldError reports a virtual-field declaration conflict.
type FieldError struct {
	Kind    string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("virtual field error (%v): %v", e.Kind, e.Message)
}

// Allocator reserves virtual-field tag spaces on behalf of the stitcher.
// It is an external collaborator: the module never assumes how (or
// whether) a real controller runtime backs the declared field with match
// bits.
type Allocator interface {
	// Declare reserves name as a virtual field whose value ranges over
	// numValues distinct values of the given kind. Declaring the same
	// name twice with an incompatible numValues/kind is an error.
	Declare(name string, numValues int, kind Kind) error
}

type fieldSpec struct {
	numValues int
	kind      Kind
}

// Registry is the reference Allocator: an in-memory map from field name to
// its declared domain size and kind.
type Registry struct {
	fields map[string]fieldSpec
}

func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]fieldSpec)}
}

func (r *Registry) Declare(name string, numValues int, kind Kind) error {
	existing, ok := r.fields[name]
	if ok {
		if existing.numValues != numValues || existing.kind != kind {
			return FieldError{
				Kind:    "ConflictingDeclaration",
				Message: fmt.Sprintf("field %q already declared with %d values of kind %v", name, existing.numValues, existing.kind),
			}
		}
		return nil
	}
	r.fields[name] = fieldSpec{numValues: numValues, kind: kind}
	return nil
}

// NumValues returns the declared domain size for name, or (0, false) if
// name was never declared.
func (r *Registry) NumValues(name string) (int, bool) {
	spec, ok := r.fields[name]
	if !ok {
		return 0, false
	}
	return spec.numValues, true
}
