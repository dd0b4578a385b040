package laws

import (
	"slices"

	"github.com/gnolang/boolnorm/internal/expr"
)

// Distributive distributes Operator over the first Dual operand it finds:
// A*(B+C) = A*B + A*C. It reads Operator, Dual and History.
//
// The remaining operands are copied into every branch, and the rewrite
// continues into the result so nested products are expanded in one call.
func Distributive(n expr.Node, p Params) expr.Node {
	return topDown(n, slot{}, func(n expr.Node, at slot) (expr.Node, bool) {
		t, ok := n.(*expr.Nary)
		if !ok || t.Op != p.Operator {
			return n, false
		}
		k := slices.IndexFunc(t.Children, func(child expr.Node) bool {
			sum, ok := child.(*expr.Nary)
			return ok && sum.Op == p.Dual
		})
		if k < 0 {
			return n, false
		}

		sum := t.Children[k].(*expr.Nary)
		branches := make([]expr.Node, 0, len(sum.Children))
		for _, term := range sum.Children {
			operands := make([]expr.Node, 0, len(t.Children))
			for i, child := range t.Children {
				if i == k {
					operands = append(operands, term)
					continue
				}
				operands = append(operands, expr.DeepCopy(child))
			}
			branches = append(branches, expr.NewNary(p.Operator, expr.FlattenChildren(operands, p.Operator)...))
		}
		repl := expr.NewNary(p.Dual, expr.FlattenChildren(branches, p.Dual)...)
		return replace(t, repl, at, expr.LawDistributive, p.History), true
	})
}
