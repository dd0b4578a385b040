package laws

import "github.com/gnolang/boolnorm/internal/expr"

// EliminateOperators rewrites XOR, IMPLIES, BICONDITIONAL, NAND and NOR in
// terms of AND, OR and NOT. Operator is AND, Dual is OR; Not and History are
// read as well.
func EliminateOperators(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		b, ok := n.(*expr.Binary)
		if !ok {
			return n
		}
		repl := structuralEquivalent(b, p)
		if repl == nil {
			return n
		}
		return replace(b, repl, at, expr.LawOperatorEliminated, p.History)
	})
}

func structuralEquivalent(b *expr.Binary, p Params) expr.Node {
	and := func(children ...expr.Node) expr.Node {
		return expr.NewNary(p.Operator, expr.FlattenChildren(children, p.Operator)...)
	}
	or := func(children ...expr.Node) expr.Node {
		return expr.NewNary(p.Dual, expr.FlattenChildren(children, p.Dual)...)
	}
	l, r := b.Left, b.Right

	switch expr.NameOf(b.Op) {
	case expr.OpImplies:
		return or(negate(l, p.Not), r)
	case expr.OpBiconditional:
		return or(and(l, r), and(negate(expr.DeepCopy(l), p.Not), negate(expr.DeepCopy(r), p.Not)))
	case expr.OpXor:
		return or(and(l, negate(r, p.Not)), and(negate(expr.DeepCopy(l), p.Not), expr.DeepCopy(r)))
	case expr.OpNand:
		return expr.NewUnary(p.Not, and(l, r))
	case expr.OpNor:
		return expr.NewUnary(p.Not, or(l, r))
	}
	return nil
}
