// Package treebuilder implements the Tree Builder (TB): the canonicalizer
// that, given a new predicate and its owning atom, returns a regex tree
// denoting exactly that predicate while re-establishing the disjoint-leaf
// invariant maintained by the symbol table: splitting any overlapping
// existing leaf and rewriting every regex tree that referenced it.
//
// This is a direct restatement of re_tree_gen.get_re_tree in
// original_source/pyretic/lib/path.py, translated from classmethod/global
// dict state to methods on an explicit *Builder holding its own *symbol.Table.
package treebuilder

import (
	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/regexast"
	"github.com/ritamzico/pathquery/internal/symbol"
)

// Builder canonicalizes predicates against a single symbol table, using
// oracle to decide overlap and satisfiability.
type Builder struct {
	Table  *symbol.Table
	Oracle predicate.Oracle
}

// New constructs a Builder over a fresh symbol table.
func New(oracle predicate.Oracle) *Builder {
	return &Builder{Table: symbol.NewTable(), Oracle: oracle}
}

// GetTree runs the §4.3 algorithm: it returns a regex tree over the
// table's (possibly newly split) alphabet that exactly denotes newPred,
// and mutates the table and every other atom's tree in place to preserve
// the disjoint-alphabet invariant.
func (b *Builder) GetTree(newPred predicate.Predicate, at symbol.AtomHandle) regexast.Node {
	remaining := newPred
	tree := regexast.Empty()

	for _, leafPred := range b.Table.Leaves() {
		switch b.Oracle.Overlap(leafPred, remaining) {
		case predicate.Equal:
			b.Table.AddAtom(leafPred, at)
			sym, _ := b.Table.SymbolFor(leafPred)
			return regexast.Union(tree, regexast.NewSym(sym, []any{at}))

		case predicate.Superset:
			// φ ⊃ remaining: split φ into (φ ∧ ¬remaining, keeps A) and
			// (remaining, keeps A ∪ {a}); the new atom's symbol names only
			// the subset branch.
			atoms := b.Table.AtomsOf(leafPred)
			kept := leafPred.And(remaining.Not())
			symKept := b.Table.NewSymbol()
			symNew := b.Table.NewSymbol()
			b.Table.Add(kept, symKept, atoms)
			b.Table.Add(remaining, symNew, append(append([]symbol.AtomHandle{}, atoms...), at))
			b.Table.ReplaceInAtoms(leafPred, []regexast.Sym{symKept, symNew})
			b.Table.Remove(leafPred)
			return regexast.Union(tree, regexast.NewSym(symNew, []any{at}))

		case predicate.Subset:
			// φ ⊂ remaining: φ's atoms now include a; shrink remaining and
			// keep scanning the rest of the alphabet.
			b.Table.AddAtom(leafPred, at)
			sym, _ := b.Table.SymbolFor(leafPred)
			tree = regexast.Union(tree, regexast.NewSym(sym, []any{at}))
			remaining = remaining.And(leafPred.Not())

		case predicate.Intersects:
			// Neither contains the other: split φ into (φ ∧ ¬remaining,
			// keeps A) and (φ ∧ remaining, keeps A ∪ {a}).
			atoms := b.Table.AtomsOf(leafPred)
			kept := leafPred.And(remaining.Not())
			both := leafPred.And(remaining)
			symKept := b.Table.NewSymbol()
			symBoth := b.Table.NewSymbol()
			b.Table.Add(kept, symKept, atoms)
			b.Table.Add(both, symBoth, append(append([]symbol.AtomHandle{}, atoms...), at))
			b.Table.ReplaceInAtoms(leafPred, []regexast.Sym{symKept, symBoth})
			b.Table.Remove(leafPred)
			tree = regexast.Union(tree, regexast.NewSym(symBoth, []any{at}))
			remaining = remaining.And(leafPred.Not())

		default: // Disjoint
			continue
		}
	}

	if b.Oracle.Satisfiable(remaining) {
		sym := b.Table.NewSymbol()
		b.Table.Add(remaining, sym, []symbol.AtomHandle{at})
		tree = regexast.Union(tree, regexast.NewSym(sym, []any{at}))
	}

	return tree
}
