package laws

import "github.com/gnolang/boolnorm/internal/expr"

// Idempotency drops repeated operands of AND and OR nodes: A+A = A and
// A*A = A. Only History is read from p.
func Idempotency(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		t, ok := n.(*expr.Nary)
		if !ok || !idempotent(t.Op) {
			return n
		}
		t.Children = expr.FlattenChildren(t.Children, t.Op)

		seen := make(map[string]bool, len(t.Children))
		drop := make(map[int]bool)
		var duplicates []expr.Node
		for i, child := range t.Children {
			key := expr.Canonical(child)
			if seen[key] {
				drop[i] = true
				duplicates = append(duplicates, child)
				continue
			}
			seen[key] = true
		}
		if len(drop) == 0 {
			return n
		}

		touch(t, expr.LawIdempotency, p.History, duplicates...)
		kept := filter(t.Children, drop)
		if len(kept) == 1 {
			return splice(t, kept[0], at, p.History)
		}
		t.Children = expr.FlattenChildren(kept, t.Op)
		return t
	})
}

func idempotent(op string) bool {
	name := expr.NameOf(op)
	return name == expr.OpAnd || name == expr.OpOr
}
