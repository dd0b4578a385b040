package laws

import "github.com/gnolang/boolnorm/internal/expr"

// Identity removes the identity element from Operator nodes: A*1 = A and
// A+0 = A. It reads Operator, Element and History.
func Identity(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		t, ok := n.(*expr.Nary)
		if !ok || t.Op != p.Operator {
			return n
		}
		t.Children = expr.FlattenChildren(t.Children, t.Op)

		drop := make(map[int]bool)
		var identities []expr.Node
		for i, child := range t.Children {
			if isConstant(child, p.Element) {
				drop[i] = true
				identities = append(identities, child)
			}
		}
		if len(drop) == 0 {
			return n
		}

		touch(t, expr.LawIdentity, p.History, identities...)
		kept := filter(t.Children, drop)
		switch len(kept) {
		case 0:
			return splice(t, expr.NewLeaf(p.Element), at, p.History)
		case 1:
			return splice(t, kept[0], at, p.History)
		}
		t.Children = kept
		return t
	})
}

func isConstant(n expr.Node, value string) bool {
	leaf, ok := n.(*expr.Leaf)
	return ok && leaf.Value == value
}
