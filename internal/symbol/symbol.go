// Package symbol maintains a bidirectional map between abstract regex
// alphabet symbols and the disjoint leaf predicates they denote (the ST
// component of the spec).
//
// Per the "Global process state" design note, ST is threaded through an
// explicit *Table value rather than kept as process-wide singleton state;
// clear() becomes "construct a fresh Table". One Table exists per atom
// kind (ingress/egress/drop/end_path/hook), which is how this module
// carries atom kind through as a symbol-alphabet distinguisher: predicates
// of different kinds are never compared for overlap because they never
// share a Table.
package symbol

import (
	"sort"

	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/regexast"
)

// AtomHandle is the non-owning back-reference a leaf entry keeps to every
// atom whose tree currently references its symbol. Atoms own their tree;
// the table only reads and, during replacement, rewrites it in place.
type AtomHandle interface {
	Tree() regexast.Node
	SetTree(regexast.Node)
}

// tokenStart mirrors Pyretic's TOKEN_START_VALUE: begin at printable ASCII
// so that dumped symbols are legible during debugging.
const tokenStart regexast.Sym = 48

type leafEntry struct {
	pred  predicate.Predicate
	sym   regexast.Sym
	atoms map[AtomHandle]struct{}
}

// Table is the Symbol Table (ST): a set of disjoint leaf predicates, each
// bijective with a symbol, each tracking the atoms that reference it.
type Table struct {
	nextToken regexast.Sym
	byPred    map[string]*leafEntry
	order     []string // insertion order of byPred keys, for deterministic iteration
	bySym     map[regexast.Sym]*leafEntry
}

// NewTable constructs an empty symbol table. Equivalent to spec's clear().
func NewTable() *Table {
	return &Table{
		nextToken: tokenStart,
		byPred:    make(map[string]*leafEntry),
		bySym:     make(map[regexast.Sym]*leafEntry),
	}
}

// NewSymbol returns a fresh, never-before-issued symbol.
func (t *Table) NewSymbol() regexast.Sym {
	t.nextToken++
	return t.nextToken
}

// Add inserts a new leaf entry. Preconditions (checked by the caller, the
// Tree Builder, which alone has access to the Oracle): pred is disjoint
// from every other stored predicate and satisfiable; sym is fresh.
func (t *Table) Add(pred predicate.Predicate, sym regexast.Sym, atoms []AtomHandle) {
	key := pred.String()
	if _, exists := t.byPred[key]; exists {
		panic(InvariantError{Kind: "DuplicatePredicate", Message: "predicate " + key + " already has a leaf entry"})
	}
	if _, exists := t.bySym[sym]; exists {
		panic(InvariantError{Kind: "DuplicateSymbol", Message: "symbol is already bound to a leaf entry"})
	}

	set := make(map[AtomHandle]struct{}, len(atoms))
	for _, a := range atoms {
		set[a] = struct{}{}
	}
	entry := &leafEntry{pred: pred, sym: sym, atoms: set}
	t.byPred[key] = entry
	t.bySym[sym] = entry
	t.order = append(t.order, key)
}

// Remove drops a leaf entry, used when it is being split.
func (t *Table) Remove(pred predicate.Predicate) {
	key := pred.String()
	entry, ok := t.byPred[key]
	if !ok {
		panic(InvariantError{Kind: "MissingPredicate", Message: "predicate " + key + " has no leaf entry to remove"})
	}
	delete(t.byPred, key)
	delete(t.bySym, entry.sym)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// AddAtom records that atom now references the leaf for pred.
func (t *Table) AddAtom(pred predicate.Predicate, a AtomHandle) {
	entry, ok := t.byPred[pred.String()]
	if !ok {
		panic(InvariantError{Kind: "MissingPredicate", Message: "predicate " + pred.String() + " has no leaf entry"})
	}
	entry.atoms[a] = struct{}{}
}

// SymbolFor returns the symbol bound to pred, and whether a leaf exists.
func (t *Table) SymbolFor(pred predicate.Predicate) (regexast.Sym, bool) {
	entry, ok := t.byPred[pred.String()]
	if !ok {
		return 0, false
	}
	return entry.sym, true
}

// PredicateFor is the inverse of SymbolFor: the bijection's other
// direction.
func (t *Table) PredicateFor(sym regexast.Sym) (predicate.Predicate, bool) {
	entry, ok := t.bySym[sym]
	if !ok {
		return nil, false
	}
	return entry.pred, true
}

// Leaves lists every leaf predicate currently tracked, in deterministic
// (insertion) order.
func (t *Table) Leaves() []predicate.Predicate {
	preds := make([]predicate.Predicate, 0, len(t.order))
	for _, key := range t.order {
		preds = append(preds, t.byPred[key].pred)
	}
	return preds
}

// Symbols lists every symbol currently bound to a leaf, in the same
// deterministic order as Leaves: the alphabet the DFA Builder needs to
// explore a product automaton over this table's atom kind.
func (t *Table) Symbols() []regexast.Sym {
	syms := make([]regexast.Sym, 0, len(t.order))
	for _, key := range t.order {
		syms = append(syms, t.byPred[key].sym)
	}
	return syms
}

// AtomsOf returns the atoms currently referencing pred's leaf, in a
// deterministic order (sorted by the atom's current tree string, stable
// enough for tests; the exact order has no semantic effect since every
// atom in the set is rewritten identically).
func (t *Table) AtomsOf(pred predicate.Predicate) []AtomHandle {
	entry, ok := t.byPred[pred.String()]
	if !ok {
		return nil
	}
	out := make([]AtomHandle, 0, len(entry.atoms))
	for a := range entry.atoms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tree().String() < out[j].Tree().String()
	})
	return out
}

// ReplaceInAtoms implements replace_in_atoms: for every atom referencing
// oldPred's symbol, rewrite every sym(oldSym, m) leaf in its tree into
// alt(sym(newSym_1, m), ..., sym(newSym_k, m)), preserving metadata. It
// fails (panics, per spec's invariant-violation policy) unless every
// intermediate node on the path to such a leaf is alternation-like.
func (t *Table) ReplaceInAtoms(oldPred predicate.Predicate, newSyms []regexast.Sym) {
	oldSym, ok := t.SymbolFor(oldPred)
	if !ok {
		panic(InvariantError{Kind: "MissingPredicate", Message: "predicate " + oldPred.String() + " has no leaf entry to replace"})
	}

	atoms := t.AtomsOf(oldPred)
	for _, a := range atoms {
		newTree, err := regexast.ReplaceSym(a.Tree(), oldSym, func(meta []any) regexast.Node {
			node := regexast.Empty()
			for _, ns := range newSyms {
				node = regexast.Union(node, regexast.NewSym(ns, meta))
			}
			return node
		})
		if err != nil {
			panic(InvariantError{Kind: "NonAlternationInterior", Message: err.Error()})
		}
		a.SetTree(newTree)
	}
}

// UnaffectedPredicate is ¬(∨ φᵢ) across all leaves: packets outside any
// query's alphabet. ambient is the "everything" predicate used as ¬∅ when
// the table has no leaves yet (mirrors Pyretic's `identity` fallback).
func (t *Table) UnaffectedPredicate(ambient predicate.Predicate) predicate.Predicate {
	if len(t.order) == 0 {
		return ambient
	}
	union := t.byPred[t.order[0]].pred
	for _, key := range t.order[1:] {
		union = union.Or(t.byPred[key].pred)
	}
	return union.Not()
}
