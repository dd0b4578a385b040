package laws

import (
	"slices"

	"github.com/gnolang/boolnorm/internal/expr"
)

// Complement replaces a term and its negation inside an Operator node with
// Element: A+!A = 1 and A*!A = 0. It reads Operator, Not, Element and History.
//
// One pair per distinct term is collapsed per call; further repetitions are
// left for the next pass.
func Complement(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		t, ok := n.(*expr.Nary)
		if !ok || t.Op != p.Operator {
			return n
		}
		t.Children = expr.FlattenChildren(t.Children, t.Op)

		pairs := complementPairs(t.Children, p.Not)
		if len(pairs) == 0 {
			return n
		}

		var marked []expr.Node
		for _, pair := range pairs {
			marked = append(marked, t.Children[pair[0]], t.Children[pair[1]])
		}
		touch(t, expr.LawComplement, p.History, marked...)

		children := slices.Clone(t.Children)
		drop := make(map[int]bool, len(pairs))
		for _, pair := range pairs {
			children[pair[0]] = expr.NewLeaf(p.Element)
			drop[pair[1]] = true
		}
		kept := filter(children, drop)
		if len(kept) == 1 {
			return splice(t, kept[0], at, p.History)
		}
		t.Children = kept
		return t
	})
}

// NegatedConstant folds the negation of a constant: !0 = 1 and !1 = 0. It
// reads Not and History.
func NegatedConstant(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		u, ok := n.(*expr.Unary)
		if !ok || u.Op != p.Not {
			return n
		}
		leaf, ok := u.Left.(*expr.Leaf)
		if !ok || !leaf.IsConstant() {
			return n
		}
		value := expr.True
		if leaf.Value == expr.True {
			value = expr.False
		}
		return replace(n, expr.NewLeaf(value), at, expr.LawComplement, p.History)
	})
}

type occurrences struct {
	positive []int
	negated  []int
}

// complementPairs returns, for every term that appears both plain and
// negated, the first index of each, lower index first.
func complementPairs(children []expr.Node, not string) [][2]int {
	byTerm := make(map[string]*occurrences)
	var order []string
	for i, child := range children {
		term, negated := child, false
		if u, ok := child.(*expr.Unary); ok && u.Op == not {
			term, negated = u.Left, true
		}
		key := expr.Canonical(term)
		occ, ok := byTerm[key]
		if !ok {
			occ = &occurrences{}
			byTerm[key] = occ
			order = append(order, key)
		}
		if negated {
			occ.negated = append(occ.negated, i)
		} else {
			occ.positive = append(occ.positive, i)
		}
	}

	var pairs [][2]int
	for _, key := range order {
		occ := byTerm[key]
		if len(occ.positive) == 0 || len(occ.negated) == 0 {
			continue
		}
		first, second := occ.positive[0], occ.negated[0]
		if first > second {
			first, second = second, first
		}
		pairs = append(pairs, [2]int{first, second})
	}
	return pairs
}
