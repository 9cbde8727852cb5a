// Package dfa is the DFA Builder (DB): it turns a list of regex trees (one
// per path query) into a single deterministic vector automaton via
// Brzozowski-style derivative construction, exploring the state space with
// a worklist and interning states structurally so equivalent derivative
// vectors collapse onto one state.
//
// This is the Go restatement of dfa_utils.regexes_to_dfa in
// original_source/pyretic/lib/path.py (which shells out to an external
// `re_vector` / `ragel`-style tool); here the vector product construction
// is done directly over internal/regexast's derivative, since this module
// has no such external tool to shell out to.
package dfa

import (
	"sort"
	"strings"

	"github.com/ritamzico/pathquery/internal/regexast"
)

// State is one vector state of the product automaton: one regex per
// original query, plus the ordinals of the queries whose regex is
// nullable at this state (i.e. that accept here).
type State struct {
	Index     int
	Vector    []regexast.Node
	Accepting []int
}

// Edge is a single labeled transition.
type Edge struct {
	Src, Dst int
	Label    regexast.Sym
}

// DFA is the explored product automaton. State 0 is always the start state,
// the state a freshly arrived, untagged packet (path_tag = None) is in.
// The dead state gets whatever index it is first assigned during
// exploration; callers find it via DeadIndex.
type DFA struct {
	States      []*State
	transitions map[int]map[regexast.Sym]int
	deadIndex   int
}

// Build explores the full derivative-vector product automaton for
// patterns over alphabet. alphabet should be the complete, disjoint symbol
// set the symbol table produced for the atom kind these patterns were
// canonicalized against.
func Build(patterns []regexast.Node, alphabet []regexast.Sym) *DFA {
	d := &DFA{transitions: make(map[int]map[regexast.Sym]int)}
	index := make(map[string]int)

	startKey := vectorKey(patterns)
	d.States = append(d.States, &State{
		Index:     0,
		Vector:    patterns,
		Accepting: acceptingOrdinals(patterns),
	})
	index[startKey] = 0

	deadVector := make([]regexast.Node, len(patterns))
	for i := range deadVector {
		deadVector[i] = regexast.Empty()
	}
	deadKey := vectorKey(deadVector)
	deadIndex, ok := index[deadKey]
	if !ok {
		deadIndex = len(d.States)
		index[deadKey] = deadIndex
		d.States = append(d.States, &State{Index: deadIndex, Vector: deadVector})
	}
	d.deadIndex = deadIndex

	worklist := []int{0}
	explored := map[int]bool{deadIndex: true}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		if cur == deadIndex || explored[cur] {
			continue
		}
		explored[cur] = true

		curVector := d.States[cur].Vector
		outgoing := make(map[regexast.Sym]int, len(alphabet))
		for _, sym := range alphabet {
			nextVector := make([]regexast.Node, len(curVector))
			for i, r := range curVector {
				nextVector[i] = regexast.Derivative(r, sym)
			}
			key := vectorKey(nextVector)
			nextIndex, ok := index[key]
			if !ok {
				nextIndex = len(d.States)
				index[key] = nextIndex
				d.States = append(d.States, &State{
					Index:     nextIndex,
					Vector:    nextVector,
					Accepting: acceptingOrdinals(nextVector),
				})
				worklist = append(worklist, nextIndex)
			}
			outgoing[sym] = nextIndex
		}
		d.transitions[cur] = outgoing
	}

	return d
}

func acceptingOrdinals(vector []regexast.Node) []int {
	var ords []int
	for i, r := range vector {
		if regexast.Nullable(r) {
			ords = append(ords, i)
		}
	}
	return ords
}

func vectorKey(vector []regexast.Node) string {
	parts := make([]string, len(vector))
	for i, r := range vector {
		parts[i] = r.String()
	}
	return strings.Join(parts, "\x00")
}

// NumStates returns the number of distinct states explored, including the
// dead state.
func (d *DFA) NumStates() int { return len(d.States) }

// DeadIndex returns the dead state's index.
func (d *DFA) DeadIndex() int { return d.deadIndex }

// IsDead reports whether state i is the dead state.
func (d *DFA) IsDead(i int) bool { return i == d.deadIndex }

// IsAccepting reports whether state i accepts any of the original
// patterns.
func (d *DFA) IsAccepting(i int) bool { return len(d.States[i].Accepting) > 0 }

// AcceptingOrdinals returns the ordinals (original pattern indices) that
// accept at state i.
func (d *DFA) AcceptingOrdinals(i int) []int { return d.States[i].Accepting }

// Edges returns every transition in deterministic order (by source state,
// then by symbol), omitting transitions whose source is the dead state.
// The stitcher never needs them: it covers dead-tagged packets with a
// single match(path_tag=dead) pass-through clause instead.
func (d *DFA) Edges() []Edge {
	srcs := make([]int, 0, len(d.transitions))
	for src := range d.transitions {
		srcs = append(srcs, src)
	}
	sort.Ints(srcs)

	var edges []Edge
	for _, src := range srcs {
		syms := make([]regexast.Sym, 0, len(d.transitions[src]))
		for sym := range d.transitions[src] {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			edges = append(edges, Edge{Src: src, Dst: d.transitions[src][sym], Label: sym})
		}
	}
	return edges
}
