// Package polalg is the produced policy algebra: the small output
// language the stitcher assembles a compiled path query's tagging and
// capture policies out of. It mirrors the handful of combinators
// pathcomp.compile uses in original_source/pyretic/lib/path.py (match,
// modify, sequential composition (>>) and parallel composition (+)) as a
// closed Go sum type instead of duck-typed Pyretic Policy objects.
package polalg

import (
	"strconv"
	"strings"
)

// Policy is a node of the output policy algebra.
type Policy interface {
	String() string
}

// Match matches packets whose Field equals Value, or is unset when Value
// is nil (match(path_tag=None) in the source this is derived from).
type Match struct {
	Field string
	Value *int
}

func (m Match) String() string {
	if m.Value == nil {
		return "match(" + m.Field + "=None)"
	}
	return "match(" + m.Field + "=" + strconv.Itoa(*m.Value) + ")"
}

// ModifyTag sets Field to Value, or clears it when Value is nil
// (modify(path_tag=None)).
type ModifyTag struct {
	Field string
	Value *int
}

func (m ModifyTag) String() string {
	if m.Value == nil {
		return "modify(" + m.Field + "=None)"
	}
	return "modify(" + m.Field + "=" + strconv.Itoa(*m.Value) + ")"
}

// Drop matches nothing; the identity element of Parallel.
type Drop struct{}

func (Drop) String() string { return "drop" }

// Identity passes every packet through unchanged; the identity element of
// Seq.
type Identity struct{}

func (Identity) String() string { return "identity" }

// And is filter intersection (&): match only packets every policy matches.
// Distinct from Seq, which sequences a match with a side-effecting policy
// (>>); And composes pure filters, mirroring Filter.__and__ in the source
// this is derived from.
type And struct {
	Policies []Policy
}

func (a And) String() string { return join(a.Policies, " & ") }

// NewAnd builds an And, dropping Identity members (&'s identity element,
// since Identity matches everything) and flattening nested Ands.
func NewAnd(policies ...Policy) Policy {
	var flat []Policy
	for _, p := range policies {
		switch c := p.(type) {
		case Identity:
			continue
		case And:
			flat = append(flat, c.Policies...)
		default:
			flat = append(flat, p)
		}
	}
	switch len(flat) {
	case 0:
		return Identity{}
	case 1:
		return flat[0]
	default:
		return And{Policies: flat}
	}
}

// Filter embeds an opaque external predicate's rendering as a pass-through
// match policy. It splices a PCO predicate's String() into the output
// tree without this package needing to depend on internal/predicate.
type Filter struct {
	Expr string
}

func (f Filter) String() string { return f.Expr }

// Deliver hands a matching packet to a named sink: the stitcher's leaf
// action for a captured packet.
type Deliver struct {
	SinkName string
}

func (d Deliver) String() string { return "deliver(" + d.SinkName + ")" }

// Seq is sequential composition (>>): apply each policy in order.
type Seq struct {
	Policies []Policy
}

func (s Seq) String() string { return join(s.Policies, " >> ") }

// Parallel is parallel composition (+): apply every policy and union the
// results.
type Parallel struct {
	Policies []Policy
}

func (p Parallel) String() string { return join(p.Policies, " + ") }

// NewSeq builds a Seq, dropping Identity members (>>'s identity element)
// and flattening nested Seqs.
func NewSeq(policies ...Policy) Policy {
	var flat []Policy
	for _, p := range policies {
		switch c := p.(type) {
		case Identity:
			continue
		case Seq:
			flat = append(flat, c.Policies...)
		default:
			flat = append(flat, p)
		}
	}
	switch len(flat) {
	case 0:
		return Identity{}
	case 1:
		return flat[0]
	default:
		return Seq{Policies: flat}
	}
}

// NewParallel builds a Parallel, dropping Drop members (+'s identity
// element) and flattening nested Parallels.
func NewParallel(policies ...Policy) Policy {
	var flat []Policy
	for _, p := range policies {
		switch c := p.(type) {
		case Drop:
			continue
		case Parallel:
			flat = append(flat, c.Policies...)
		default:
			flat = append(flat, p)
		}
	}
	switch len(flat) {
	case 0:
		return Drop{}
	case 1:
		return flat[0]
	default:
		return Parallel{Policies: flat}
	}
}

func join(policies []Policy, sep string) string {
	parts := make([]string, len(policies))
	for i, p := range policies {
		parts[i] = "(" + p.String() + ")"
	}
	return strings.Join(parts, sep)
}

