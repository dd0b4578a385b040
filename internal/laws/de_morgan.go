package laws

import "github.com/gnolang/boolnorm/internal/expr"

// DeMorgan pushes negations through Operator and Dual:
// !(A∘B∘…) = !A∙!B∙… . It reads Operator, Dual, Not and History.
//
// Each new negation is folded once, so !(!A*B) becomes A+!B directly.
func DeMorgan(n expr.Node, p Params) expr.Node {
	return topDown(n, slot{}, func(n expr.Node, at slot) (expr.Node, bool) {
		u, ok := n.(*expr.Unary)
		if !ok || u.Op != p.Not {
			return n, false
		}
		var repl expr.Node
		switch inner := u.Left.(type) {
		case *expr.Nary:
			dual, ok := dualOf(inner.Op, p)
			if !ok {
				return n, false
			}
			negated := make([]expr.Node, len(inner.Children))
			for i, child := range inner.Children {
				negated[i] = negate(child, p.Not)
			}
			repl = expr.NewNary(dual, expr.FlattenChildren(negated, dual)...)
		case *expr.Binary:
			dual, ok := dualOf(inner.Op, p)
			if !ok {
				return n, false
			}
			repl = expr.NewBinary(dual, negate(inner.Left, p.Not), negate(inner.Right, p.Not))
		default:
			return n, false
		}
		return replace(u, repl, at, expr.LawDeMorgan, p.History), true
	})
}
