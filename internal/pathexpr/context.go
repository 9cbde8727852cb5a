package pathexpr

import (
	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/symbol"
	"github.com/ritamzico/pathquery/internal/treebuilder"
)

// Context owns the per-kind symbol tables an atom's predicate is
// canonicalized against, plus the ambient "matches everything" predicate
// used as the identity element for the concat-anywhere sugar (Path.Anywhere)
// and as UnaffectedPredicate's fallback when a kind has no leaves yet.
type Context struct {
	oracle   predicate.Oracle
	identity predicate.Predicate
	builders map[AtomKind]*treebuilder.Builder
}

// NewContext constructs a Context. identity must be the predicate matching
// every located packet in oracle's algebra (e.g. Universe.All() for the
// reference implementation).
func NewContext(oracle predicate.Oracle, identity predicate.Predicate) *Context {
	return &Context{
		oracle:   oracle,
		identity: identity,
		builders: make(map[AtomKind]*treebuilder.Builder),
	}
}

func (c *Context) builderFor(kind AtomKind) *treebuilder.Builder {
	b, ok := c.builders[kind]
	if !ok {
		b = treebuilder.New(c.oracle)
		c.builders[kind] = b
	}
	return b
}

// TableFor exposes the symbol table canonicalizing kind's atoms, for
// callers (the stitcher, via the root compiler facade) that need to feed
// a kind's leaf predicates and alphabet into the DFA Builder.
func (c *Context) TableFor(kind AtomKind) *symbol.Table {
	return c.builderFor(kind).Table
}

// UnaffectedPredicate returns, for a given kind, the predicate matching
// every located packet not covered by any atom of that kind registered so
// far: the complement of the kind's alphabet, falling back to identity
// when the kind has no atoms at all.
func (c *Context) UnaffectedPredicate(kind AtomKind) predicate.Predicate {
	return c.builderFor(kind).Table.UnaffectedPredicate(c.identity)
}
