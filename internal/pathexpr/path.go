// Package pathexpr is the Path Expression layer (PE): atom kinds, the
// canonicalizing Atom type, and the regex-shaped path combinators a query
// is built from before it reaches the DFA Builder.
package pathexpr

import "github.com/ritamzico/pathquery/internal/regexast"

// Path is any path expression: something with a regex tree over the
// symbol alphabet its atoms were canonicalized into.
type Path interface {
	Tree() regexast.Node
}

// Epsilon is the path of length zero, matching the trajectory with no
// hops.
type Epsilon struct{}

func (Epsilon) Tree() regexast.Node { return regexast.Epsilon() }

// Empty is the path matching no trajectory at all.
type Empty struct{}

func (Empty) Tree() regexast.Node { return regexast.Empty() }

// AtomPath lifts a single Atom into a Path.
type AtomPath struct {
	Atom *Atom
}

func (p AtomPath) Tree() regexast.Node { return p.Atom.Tree() }

// Alternate is the alternation (logical OR) of two or more paths.
type Alternate struct {
	Paths []Path
}

func (p Alternate) Tree() regexast.Node {
	children := make([]regexast.Node, len(p.Paths))
	for i, c := range p.Paths {
		children[i] = c.Tree()
	}
	return regexast.Union(children...)
}

// Star is the Kleene star (zero-or-more repetition) of a path.
type Star struct {
	Path Path
}

func (p Star) Tree() regexast.Node { return regexast.Star(p.Path.Tree()) }

// Negate is the complement of a path.
type Negate struct {
	Path Path
}

func (p Negate) Tree() regexast.Node { return regexast.Negate(p.Path.Tree()) }

// Inter is the intersection (logical AND) of two or more paths.
type Inter struct {
	Paths []Path
}

func (p Inter) Tree() regexast.Node {
	children := make([]regexast.Node, len(p.Paths))
	for i, c := range p.Paths {
		children[i] = c.Tree()
	}
	return regexast.Inter(children...)
}

// Concat is the concatenation of two or more paths, in order.
type Concat struct {
	Paths []Path
}

func (p Concat) Tree() regexast.Node {
	children := make([]regexast.Node, len(p.Paths))
	for i, c := range p.Paths {
		children[i] = c.Tree()
	}
	return regexast.Concat(children...)
}

// SmartConcat builds a Concat, dropping Epsilon members and flattening
// nested Concats, the way path_concat.smart_concat does, so repeatedly
// concatenating paths doesn't build up a deep chain of singleton Concat
// wrappers.
func SmartConcat(paths []Path) Path {
	var flat []Path
	for _, p := range paths {
		switch c := p.(type) {
		case Epsilon:
			continue
		case Concat:
			flat = append(flat, c.Paths...)
		default:
			flat = append(flat, p)
		}
	}
	switch len(flat) {
	case 0:
		return Epsilon{}
	case 1:
		return flat[0]
	default:
		return Concat{Paths: flat}
	}
}

// Anywhere builds the "concatenate anytime later" sugar: x ** y, shorthand
// for x ^ identity* ^ y, where identity is an Ingress atom over ctx's
// ambient identity predicate. It denotes x followed eventually by y, with
// any number of unconstrained ingress hops in between.
func Anywhere(ctx *Context, x, y Path) Path {
	identityAtom := AtomPath{Atom: ctx.newAtom(Ingress, ctx.identity, nil)}
	return SmartConcat([]Path{x, Star{Path: identityAtom}, y})
}
