package laws

import "github.com/gnolang/boolnorm/internal/expr"

// Dominant collapses Operator nodes holding the dominant element: A+1 = 1 and
// A*0 = 0. It reads Operator, Element and History.
func Dominant(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		t, ok := n.(*expr.Nary)
		if !ok || t.Op != p.Operator {
			return n
		}
		for _, child := range t.Children {
			if isConstant(child, p.Element) {
				return replace(t, expr.NewLeaf(p.Element), at, expr.LawDominant, p.History)
			}
		}
		return n
	})
}
