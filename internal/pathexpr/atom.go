package pathexpr

import (
	"sort"
	"strings"

	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/regexast"
)

// Atom is a single atomic match in a path expression: a predicate tagged
// with the kind of match space it draws from, plus (for Hook atoms) the
// fields matching packets are grouped by.
//
// Atom implements symbol.AtomHandle: its canonical regex tree is owned and
// rewritten in place by the Tree Builder whenever a later atom's predicate
// forces the atom's leaf to split.
type Atom struct {
	ctx     *Context
	kind    AtomKind
	pred    predicate.Predicate
	groupby []string
	tree    regexast.Node
}

// Tree returns the atom's current canonical regex tree.
func (a *Atom) Tree() regexast.Node { return a.tree }

// SetTree is called by the symbol table when this atom's leaf is split; it
// should not be called from anywhere else.
func (a *Atom) SetTree(n regexast.Node) { a.tree = n }

// Kind returns the atom's match-space kind.
func (a *Atom) Kind() AtomKind { return a.kind }

// Predicate returns the atom's underlying predicate.
func (a *Atom) Predicate() predicate.Predicate { return a.pred }

// Groupby returns the Hook grouping fields, or nil for non-Hook atoms.
func (a *Atom) Groupby() []string { return a.groupby }

func (a *Atom) String() string {
	if a.kind == Hook {
		return a.pred.String() + "; groupby:" + strings.Join(a.groupby, ",")
	}
	return a.pred.String()
}

// newAtom canonicalizes pred against kind's symbol table and returns the
// resulting Atom.
func (c *Context) newAtom(kind AtomKind, pred predicate.Predicate, groupby []string) *Atom {
	a := &Atom{ctx: c, kind: kind, pred: pred, groupby: groupby}
	a.tree = c.builderFor(kind).GetTree(pred, a)
	return a
}

// NewIngress returns an atom matching pred on ingress (the default, most
// common atom kind).
func (c *Context) NewIngress(pred predicate.Predicate) *Atom { return c.newAtom(Ingress, pred, nil) }

// NewEgress returns an atom matching pred after a forwarding decision.
func (c *Context) NewEgress(pred predicate.Predicate) *Atom { return c.newAtom(Egress, pred, nil) }

// NewDrop returns an atom matching pred on packets the forwarding policy
// dropped.
func (c *Context) NewDrop(pred predicate.Predicate) *Atom { return c.newAtom(Drop, pred, nil) }

// NewEndPath returns an atom matching pred at the end of a trajectory.
func (c *Context) NewEndPath(pred predicate.Predicate) *Atom { return c.newAtom(EndPath, pred, nil) }

// NewHook returns an atom matching pred on ingress, additionally grouping
// matches by groupby. groupby must be non-empty.
func (c *Context) NewHook(pred predicate.Predicate, groupby []string) *Atom {
	if len(groupby) == 0 {
		panic(ConstructionError{Message: "hook atoms require at least one groupby field"})
	}
	sorted := append([]string(nil), groupby...)
	sort.Strings(sorted)
	return c.newAtom(Hook, pred, sorted)
}

func (a *Atom) sameGroupby(other *Atom) bool {
	if len(a.groupby) != len(other.groupby) {
		return false
	}
	for i := range a.groupby {
		if a.groupby[i] != other.groupby[i] {
			return false
		}
	}
	return true
}

// And returns the atom matching pred(a) ∧ pred(other). Both atoms must
// share a kind (and, for hooks, a groupby).
func (a *Atom) And(other *Atom) (*Atom, error) {
	if a.kind != other.kind {
		return nil, kindMismatch("&", a.kind, other.kind)
	}
	if a.kind == Hook && !a.sameGroupby(other) {
		return nil, groupbyMismatch("&")
	}
	return a.ctx.newAtom(a.kind, a.pred.And(other.pred), a.groupby), nil
}

// Or returns the atom matching pred(a) ∨ pred(other). Both atoms must
// share a kind (and, for hooks, a groupby).
func (a *Atom) Or(other *Atom) (*Atom, error) {
	if a.kind != other.kind {
		return nil, kindMismatch("|", a.kind, other.kind)
	}
	if a.kind == Hook && !a.sameGroupby(other) {
		return nil, groupbyMismatch("|")
	}
	return a.ctx.newAtom(a.kind, a.pred.Or(other.pred), a.groupby), nil
}

// Sub returns the atom matching pred(a) ∧ ¬pred(other): the set-difference
// of the two atoms' matches. Both atoms must share a kind (and, for hooks,
// a groupby).
func (a *Atom) Sub(other *Atom) (*Atom, error) {
	if a.kind != other.kind {
		return nil, kindMismatch("-", a.kind, other.kind)
	}
	if a.kind == Hook && !a.sameGroupby(other) {
		return nil, groupbyMismatch("-")
	}
	return a.ctx.newAtom(a.kind, a.pred.And(other.pred.Not()), a.groupby), nil
}

// Negate returns the atom matching ¬pred(a), same kind and groupby.
func (a *Atom) Negate() *Atom {
	return a.ctx.newAtom(a.kind, a.pred.Not(), a.groupby)
}
