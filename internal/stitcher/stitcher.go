// Package stitcher is the Stitcher (SX): it walks a compiled DFA and
// assembles the (tagging, capture) policy pair pathcomp.compile produces
// in original_source/pyretic/lib/path.py. It also recovers separate
// end_path and drop capture-bucket fragments from
// pathcomp.get_policy_fragments/stitch, for queries that registered one.
package stitcher

import (
	"github.com/ritamzico/pathquery/internal/dfa"
	"github.com/ritamzico/pathquery/internal/pathexpr"
	"github.com/ritamzico/pathquery/internal/polalg"
	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/regexast"
	"github.com/ritamzico/pathquery/internal/symbol"
	"github.com/ritamzico/pathquery/internal/vfield"
)

// TagField is the virtual field name the stitcher declares to carry the
// compiled DFA's current state, mirroring "path_tag" in the source this
// is derived from.
const TagField = "path_tag"

// Result is the stitcher's output: the critical-path tagging policy, the
// primary (ingress) capture policy, and the two supplemental capture
// fragments for end_path and drop atom kinds.
type Result struct {
	Tagging  polalg.Policy
	Capture  polalg.Policy
	EndPath  polalg.Policy
	Dropping polalg.Policy

	NumStates int
}

// Compile runs the SX algorithm over policies, whose Path trees must all
// have been canonicalized against table (one ingress symbol table shared
// by every query), and declares the resulting state count on allocator
// under TagField. identity is the ambient "matches everything" predicate,
// used as cg.get_unaffected_pred()'s fallback.
func Compile(
	policies []pathexpr.PathPolicy,
	table *symbol.Table,
	alphabet []regexast.Sym,
	allocator vfield.Allocator,
	identity predicate.Predicate,
) (*Result, error) {
	if len(policies) == 0 {
		return nil, StitchError{Kind: "EmptyQuerySet", Message: "stitching requires at least one path policy"}
	}

	patterns := make([]regexast.Node, len(policies))
	for i, p := range policies {
		patterns[i] = p.Path.Tree()
	}

	d := dfa.Build(patterns, alphabet)

	if err := allocator.Declare(TagField, d.NumStates(), vfield.Integer); err != nil {
		return nil, err
	}

	// A packet already carrying the dead tag passes through untouched;
	// it has left every query language and has nothing left to match.
	tagging := polalg.Policy(matchTag(d.DeadIndex()))
	capture := polalg.Policy(polalg.Drop{})
	endpath := polalg.Policy(polalg.Drop{})
	dropping := polalg.Policy(polalg.Drop{})

	for _, edge := range d.Edges() {
		pred, ok := table.PredicateFor(edge.Label)
		if !ok {
			return nil, StitchError{Kind: "UnknownSymbol", Message: "DFA edge references a symbol with no leaf predicate"}
		}

		guard := polalg.NewAnd(matchTag(edge.Src), polalg.Filter{Expr: pred.String()})
		tagging = polalg.NewParallel(tagging, polalg.NewSeq(guard, setTag(edge.Dst)))

		if !d.IsAccepting(edge.Dst) {
			continue
		}
		for _, ord := range d.AcceptingOrdinals(edge.Dst) {
			pp := policies[ord]
			if pp.Sink != nil {
				capture = polalg.NewParallel(capture, polalg.NewSeq(guard, polalg.Deliver{SinkName: pp.Sink.String()}))
			}
			if pp.EndPath != nil {
				endpath = polalg.NewParallel(endpath, polalg.NewSeq(guard, polalg.Deliver{SinkName: pp.EndPath.String()}))
			}
			if pp.Dropping != nil {
				dropping = polalg.NewParallel(dropping, polalg.NewSeq(guard, polalg.Deliver{SinkName: pp.Dropping.String()}))
			}
		}
	}

	unaffected := table.UnaffectedPredicate(identity)
	tagging = polalg.NewParallel(tagging, polalg.Filter{Expr: unaffected.String()})

	return &Result{
		Tagging:   tagging,
		Capture:   capture,
		EndPath:   endpath,
		Dropping:  dropping,
		NumStates: d.NumStates(),
	}, nil
}

func matchTag(state int) polalg.Policy {
	if state == 0 {
		return polalg.Match{Field: TagField, Value: nil}
	}
	v := state
	return polalg.Match{Field: TagField, Value: &v}
}

func setTag(state int) polalg.Policy {
	if state == 0 {
		return polalg.ModifyTag{Field: TagField, Value: nil}
	}
	v := state
	return polalg.ModifyTag{Field: TagField, Value: &v}
}
