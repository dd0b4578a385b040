package laws

import "github.com/gnolang/boolnorm/internal/expr"

// Associativity flattens nested n-ary nodes of the same operator. Only
// History is read from p.
func Associativity(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, _ slot) expr.Node {
		t, ok := n.(*expr.Nary)
		if !ok {
			return n
		}
		var nested []expr.Node
		for _, child := range t.Children {
			if c, ok := child.(*expr.Nary); ok && c.Op == t.Op {
				nested = append(nested, c)
			}
		}
		if len(nested) == 0 {
			return n
		}
		touch(t, expr.LawAssociativity, p.History, nested...)
		t.Children = expr.FlattenChildren(t.Children, t.Op)
		return t
	})
}
