package regexast

// Empty returns ∅, the regex matching nothing.
func Empty() Node { return EmptyNode{} }

// Epsilon returns ε, the regex matching only the empty string.
func Epsilon() Node { return EpsilonNode{} }

// NewSym returns a leaf matching exactly one occurrence of sym, tagged
// with the given metadata.
func NewSym(sym Sym, meta []any) Node { return SymNode{Value: sym, Meta: meta} }

// Union builds an alternation, flattening nested alternations and
// dropping ∅ children (alt's identity).
func Union(nodes ...Node) Node {
	var flat []Node
	for _, n := range nodes {
		switch c := n.(type) {
		case EmptyNode:
			continue
		case AltNode:
			flat = append(flat, c.Children...)
		default:
			flat = append(flat, n)
		}
	}
	switch len(flat) {
	case 0:
		return Empty()
	case 1:
		return flat[0]
	default:
		return AltNode{Children: flat}
	}
}

// Concat builds a concatenation. It drops ε children, flattens nested
// concatenations, and collapses to ∅ as soon as any child is ∅.
func Concat(nodes ...Node) Node {
	var flat []Node
	for _, n := range nodes {
		if _, isEmpty := n.(EmptyNode); isEmpty {
			return Empty()
		}
		switch c := n.(type) {
		case EpsilonNode:
			continue
		case CatNode:
			flat = append(flat, c.Children...)
		default:
			flat = append(flat, n)
		}
	}
	switch len(flat) {
	case 0:
		return Epsilon()
	case 1:
		return flat[0]
	default:
		return CatNode{Children: flat}
	}
}

// Star builds a Kleene star. star(ε) = ε, star(∅) = ε (the empty language
// repeated zero-or-more times is still just the empty string), and
// star(star(r)) = star(r).
func Star(r Node) Node {
	switch c := r.(type) {
	case EpsilonNode:
		return Epsilon()
	case EmptyNode:
		return Epsilon()
	case StarNode:
		return c
	default:
		return StarNode{Child: r}
	}
}

// Inter builds an intersection, flattening nested intersections and
// collapsing to ∅ as soon as any child is ∅. Inter() with no arguments is
// the universal language ¬∅, matching path_inters's "~re_empty()" base
// case in the source this is derived from.
func Inter(nodes ...Node) Node {
	var flat []Node
	for _, n := range nodes {
		if _, isEmpty := n.(EmptyNode); isEmpty {
			return Empty()
		}
		if c, ok := n.(InterNode); ok {
			flat = append(flat, c.Children...)
			continue
		}
		flat = append(flat, n)
	}
	switch len(flat) {
	case 0:
		return Negate(Empty())
	case 1:
		return flat[0]
	default:
		return InterNode{Children: flat}
	}
}

// Negate builds a complement. Double negation cancels.
func Negate(r Node) Node {
	if c, ok := r.(NegNode); ok {
		return c.Child
	}
	return NegNode{Child: r}
}

// Equal reports structural equality on the canonical shape, ignoring
// per-symbol metadata (which is bookkeeping, not part of the language a
// node denotes).
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case EmptyNode:
		_, ok := b.(EmptyNode)
		return ok
	case EpsilonNode:
		_, ok := b.(EpsilonNode)
		return ok
	case SymNode:
		y, ok := b.(SymNode)
		return ok && x.Value == y.Value
	case AltNode:
		y, ok := b.(AltNode)
		return ok && equalSlice(x.Children, y.Children)
	case CatNode:
		y, ok := b.(CatNode)
		return ok && equalSlice(x.Children, y.Children)
	case StarNode:
		y, ok := b.(StarNode)
		return ok && Equal(x.Child, y.Child)
	case InterNode:
		y, ok := b.(InterNode)
		return ok && equalSlice(x.Children, y.Children)
	case NegNode:
		y, ok := b.(NegNode)
		return ok && Equal(x.Child, y.Child)
	default:
		return false
	}
}

func equalSlice(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
