package pathexpr

import (
	"sync"

	"github.com/ritamzico/pathquery/internal/sink"
)

// PathPolicy pairs a path expression with the sink its matching
// trajectories are delivered to: the thing a single query compiles down
// to before stitching.
//
// EndPath and Dropping are the supplemental capture-bucket fragments
// recovered from pathcomp.get_policy_fragments/stitch: when set, the
// stitcher additionally delivers to them whenever this query's pattern
// accepts, alongside the primary Sink delivery, without requiring a
// separate tagging automaton for the end_path/drop atom kinds.
type PathPolicy struct {
	Path     Path
	Sink     sink.Sink
	EndPath  sink.Sink
	Dropping sink.Sink
}

// PolicyNode is any node of a path-policy AST: a single PathPolicy leaf,
// a union of several, or a dynamically-replaceable wrapper around one.
// Leaves flattens the AST down to its PathPolicy leaves, mirroring
// path_policy_utils.ast_fold + pathcomp.__get_re_pols__.
type PolicyNode interface {
	Leaves() []PathPolicy
}

func (p PathPolicy) Leaves() []PathPolicy { return []PathPolicy{p} }

// PolicyUnion combines two or more policy nodes with no interaction
// between them. Its Leaves are the concatenation of its children's leaves;
// the stitcher compiles a list of leaves into one shared automaton.
type PolicyUnion struct {
	Children []PolicyNode
}

func (p PolicyUnion) Leaves() []PathPolicy {
	var out []PathPolicy
	for _, c := range p.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// DynamicPolicy is a policy node whose inner node can be swapped out at
// runtime (e.g. in response to a hook's grouping callback registering a new
// sub-query). Swapping calls the attached notify callback, letting a
// recompiler re-run the stitcher.
type DynamicPolicy struct {
	mu     sync.Mutex
	inner  PolicyNode
	notify func(*DynamicPolicy)
}

// NewDynamicPolicy wraps inner in a DynamicPolicy.
func NewDynamicPolicy(inner PolicyNode) *DynamicPolicy {
	return &DynamicPolicy{inner: inner}
}

func (p *DynamicPolicy) Leaves() []PathPolicy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Leaves()
}

// Attach registers the callback to run whenever Set changes the inner
// policy node.
func (p *DynamicPolicy) Attach(notify func(*DynamicPolicy)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = notify
}

// Detach stops notifying on change.
func (p *DynamicPolicy) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = nil
}

// Set replaces the inner policy node and, if attached, notifies.
func (p *DynamicPolicy) Set(inner PolicyNode) {
	p.mu.Lock()
	p.inner = inner
	notify := p.notify
	p.mu.Unlock()
	if notify != nil {
		notify(p)
	}
}
