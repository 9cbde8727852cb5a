package regexast

// Nullable reports whether ε ∈ L(r).
func Nullable(r Node) bool {
	switch n := r.(type) {
	case EmptyNode:
		return false
	case EpsilonNode:
		return true
	case SymNode:
		return false
	case AltNode:
		for _, c := range n.Children {
			if Nullable(c) {
				return true
			}
		}
		return false
	case CatNode:
		for _, c := range n.Children {
			if !Nullable(c) {
				return false
			}
		}
		return true
	case StarNode:
		return true
	case InterNode:
		for _, c := range n.Children {
			if !Nullable(c) {
				return false
			}
		}
		return true
	case NegNode:
		return !Nullable(n.Child)
	default:
		return false
	}
}

// Derivative computes ∂_σ r: the residual regex matching strings w such
// that σw ∈ L(r). Metadata on a consumed symbol leaf is forwarded onto the
// resulting ε, per the spec's derivative-preserves-metadata requirement.
func Derivative(r Node, sigma Sym) Node {
	switch n := r.(type) {
	case EmptyNode:
		return Empty()
	case EpsilonNode:
		return Empty()
	case SymNode:
		if n.Value == sigma {
			return EpsilonNode{Meta: n.Meta}
		}
		return Empty()
	case AltNode:
		ds := make([]Node, len(n.Children))
		for i, c := range n.Children {
			ds[i] = Derivative(c, sigma)
		}
		return Union(ds...)
	case CatNode:
		return derivativeCat(n.Children, sigma)
	case StarNode:
		return Concat(Derivative(n.Child, sigma), Star(n.Child))
	case InterNode:
		ds := make([]Node, len(n.Children))
		for i, c := range n.Children {
			ds[i] = Derivative(c, sigma)
		}
		return Inter(ds...)
	case NegNode:
		return Negate(Derivative(n.Child, sigma))
	default:
		return Empty()
	}
}

// derivativeCat applies the standard concatenation derivative rule to an
// n-ary concatenation by treating it as head · tail:
//
//	∂_σ(r1 · rest) = (∂_σ r1) · rest  ∪  (∂_σ rest, if ν(r1) = ε else ∅)
func derivativeCat(children []Node, sigma Sym) Node {
	if len(children) == 0 {
		return Empty()
	}
	head := children[0]
	rest := Concat(children[1:]...)

	left := Concat(Derivative(head, sigma), rest)
	if Nullable(head) {
		return Union(left, Derivative(rest, sigma))
	}
	return left
}
