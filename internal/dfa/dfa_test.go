package dfa

import (
	"testing"

	"github.com/ritamzico/pathquery/internal/regexast"
)

func TestBuild_StartStateIsAlwaysIndexZero(t *testing.T) {
	pattern := regexast.NewSym(1, nil)
	d := Build([]regexast.Node{pattern}, []regexast.Sym{1, 2})

	if !regexast.Equal(d.States[0].Vector[0], pattern) {
		t.Fatalf("state 0 must hold the untouched pattern vector, got %v", d.States[0].Vector[0])
	}
	if d.IsAccepting(0) {
		t.Fatalf("sym(1) should not accept before consuming anything")
	}
}

func TestBuild_DeadStateIsDistinctFromStart(t *testing.T) {
	pattern := regexast.NewSym(1, nil)
	d := Build([]regexast.Node{pattern}, []regexast.Sym{1, 2})

	if d.DeadIndex() == 0 {
		t.Fatalf("the dead state must not share the start state's index")
	}
	if !d.IsDead(d.DeadIndex()) {
		t.Fatalf("IsDead(DeadIndex()) must be true")
	}
	if len(d.AcceptingOrdinals(d.DeadIndex())) != 0 {
		t.Fatalf("dead state must not accept anything")
	}
}

func TestBuild_SingleSymbolPatternAcceptsAfterOneTransition(t *testing.T) {
	pattern := regexast.NewSym(1, nil) // matches exactly one occurrence of symbol 1
	d := Build([]regexast.Node{pattern}, []regexast.Sym{1, 2})

	if d.IsAccepting(0) {
		t.Fatalf("pattern sym(1) should not accept before consuming anything")
	}

	edges := d.Edges()
	var viaOne, viaTwo = -1, -1
	for _, e := range edges {
		if e.Src != 0 {
			continue
		}
		if e.Label == 1 {
			viaOne = e.Dst
		}
		if e.Label == 2 {
			viaTwo = e.Dst
		}
	}
	if viaOne == -1 || viaTwo == -1 {
		t.Fatalf("expected transitions on both symbols from the start state")
	}
	if !d.IsAccepting(viaOne) {
		t.Fatalf("consuming symbol 1 from the start state should accept")
	}
	if !d.IsDead(viaTwo) {
		t.Fatalf("consuming symbol 2 (not in the pattern) should lead to the dead state")
	}
}

func TestBuild_StarPatternAcceptsAtEveryStep(t *testing.T) {
	pattern := regexast.Star(regexast.NewSym(1, nil))
	d := Build([]regexast.Node{pattern}, []regexast.Sym{1})

	if !d.IsAccepting(0) {
		t.Fatalf("star is nullable, so the start state must accept")
	}

	edges := d.Edges()
	var next int = -1
	for _, e := range edges {
		if e.Src == 0 && e.Label == 1 {
			next = e.Dst
		}
	}
	if next == -1 {
		t.Fatalf("expected a transition on symbol 1 from the start state")
	}
	if !d.IsAccepting(next) {
		t.Fatalf("star(sym(1)) derivative by 1 should still accept")
	}
	if next != 0 {
		t.Fatalf("star(sym(1)) should collapse to a single self-looping state, got distinct states 0 and %d", next)
	}
}

func TestBuild_AcceptingOrdinalsDistinguishMultiplePatterns(t *testing.T) {
	patterns := []regexast.Node{
		regexast.NewSym(1, nil),
		regexast.Concat(regexast.NewSym(1, nil), regexast.NewSym(2, nil)),
	}
	d := Build(patterns, []regexast.Sym{1, 2})

	edges := d.Edges()
	var afterOne, afterOneTwo = -1, -1
	for _, e := range edges {
		if e.Src == 0 && e.Label == 1 {
			afterOne = e.Dst
		}
	}
	if afterOne < 0 {
		t.Fatalf("expected a transition on symbol 1 from start")
	}
	ords := d.AcceptingOrdinals(afterOne)
	if len(ords) != 1 || ords[0] != 0 {
		t.Fatalf("only pattern 0 should accept after consuming just symbol 1, got %v", ords)
	}

	for _, e := range edges {
		if e.Src == afterOne && e.Label == 2 {
			afterOneTwo = e.Dst
		}
	}
	if afterOneTwo < 0 {
		t.Fatalf("expected a transition on symbol 2 from the post-1 state")
	}
	ords = d.AcceptingOrdinals(afterOneTwo)
	if len(ords) != 1 || ords[0] != 1 {
		t.Fatalf("only pattern 1 should accept after consuming symbol 1 then 2, got %v", ords)
	}
}

// TestBuild_ConcatPatternTagSequence reproduces the end-to-end scenario from
// spec.md section 8 scenario 5: pattern a^b over a two-symbol alphabet
// produces exactly three live states (start, after-a, after-a-b) plus the
// dead state, with start at index 0 so a fresh, untagged packet enters the
// automaton on its first transition.
func TestBuild_ConcatPatternTagSequence(t *testing.T) {
	a, b := regexast.Sym(1), regexast.Sym(2)
	pattern := regexast.Concat(regexast.NewSym(a, nil), regexast.NewSym(b, nil))
	d := Build([]regexast.Node{pattern}, []regexast.Sym{a, b})

	edges := d.Edges()
	var afterA, afterAB = -1, -1
	for _, e := range edges {
		if e.Src == 0 && e.Label == a {
			afterA = e.Dst
		}
	}
	if afterA == -1 {
		t.Fatalf("expected a transition on 'a' from the start state (index 0)")
	}
	if d.IsAccepting(0) || d.IsAccepting(afterA) {
		t.Fatalf("neither the start state nor the after-a state should accept")
	}
	for _, e := range edges {
		if e.Src == afterA && e.Label == b {
			afterAB = e.Dst
		}
	}
	if afterAB == -1 {
		t.Fatalf("expected a transition on 'b' from the after-a state")
	}
	if !d.IsAccepting(afterAB) {
		t.Fatalf("the after-a-b state should accept")
	}
	if d.NumStates() != 4 {
		t.Fatalf("expected start, after-a, after-a-b and dead, got %d states", d.NumStates())
	}
}
