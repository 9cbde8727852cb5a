package regexast

// ReplaceSym rewrites every occurrence of a symbol leaf sym(old, m) in
// tree into build(m), preserving the original metadata through build's
// argument. It requires every interior node on the path from tree's root
// to any such leaf to be an alternation: the invariant that lets the
// Tree Builder splice a single leaf into several without touching
// anything else in the tree (see the Design Notes on the alternation-only
// invariant). Any other interior node shape is a TypeError.
func ReplaceSym(tree Node, old Sym, build func(meta []any) Node) (Node, error) {
	switch n := tree.(type) {
	case EmptyNode, EpsilonNode:
		return tree, nil
	case SymNode:
		if n.Value == old {
			return build(n.Meta), nil
		}
		return tree, nil
	case AltNode:
		newChildren := make([]Node, len(n.Children))
		for i, c := range n.Children {
			rc, err := ReplaceSym(c, old, build)
			if err != nil {
				return nil, err
			}
			newChildren[i] = rc
		}
		return Union(newChildren...), nil
	default:
		return nil, TypeError{
			Kind:    "NonAlternationInterior",
			Message: "atom trees may only have alternation interior nodes, found " + tree.String(),
		}
	}
}
