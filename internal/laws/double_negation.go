package laws

import "github.com/gnolang/boolnorm/internal/expr"

// DoubleNegation removes every !!A pair, top-down. It reads Not and History.
func DoubleNegation(n expr.Node, p Params) expr.Node {
	return topDown(n, slot{}, func(n expr.Node, at slot) (expr.Node, bool) {
		inner, ok := doubleNegated(n, p.Not)
		if !ok {
			return n, false
		}
		return replace(n, inner, at, expr.LawDoubleNegation, p.History), true
	})
}

// DoubleNegationOnce folds n when it is itself a double negation. It does not
// look below n.
func DoubleNegationOnce(n expr.Node, not string) expr.Node {
	inner, ok := doubleNegated(n, not)
	if !ok {
		return n
	}
	expr.TransferRoot(n, inner)
	return inner
}

func doubleNegated(n expr.Node, not string) (expr.Node, bool) {
	outer, ok := n.(*expr.Unary)
	if !ok || outer.Op != not {
		return nil, false
	}
	inner, ok := outer.Left.(*expr.Unary)
	if !ok || inner.Op != not {
		return nil, false
	}
	return inner.Left, true
}

// negate wraps n in a negation, folding it when n is already negated.
func negate(n expr.Node, not string) expr.Node {
	return DoubleNegationOnce(expr.NewUnary(not, n), not)
}
