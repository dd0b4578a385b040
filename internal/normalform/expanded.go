package normalform

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/laws"
)

// ExpandNormalForm appends (X+!X) to every disjunct of a DNF tree for each
// variable X of vars the disjunct does not mention. Distributing the result
// yields one minterm per satisfying assignment.
func ExpandNormalForm(tree expr.Node, vars mapset.Set[string], ops laws.Operators) (expr.Node, error) {
	if leaf, ok := tree.(*expr.Leaf); ok && leaf.Value == expr.False {
		return tree, nil
	}
	if sum, ok := tree.(*expr.Nary); ok && sum.Op == ops.Or {
		for i, term := range sum.Children {
			extended, err := extendConjunction(term, vars, ops)
			if err != nil {
				return nil, err
			}
			sum.Children[i] = extended
		}
		return tree, nil
	}

	extended, err := extendConjunction(tree, vars, ops)
	if err != nil {
		return nil, err
	}
	expr.TransferRoot(tree, extended)
	return extended, nil
}

func extendConjunction(term expr.Node, vars mapset.Set[string], ops laws.Operators) (expr.Node, error) {
	factors := conjuncts(term, ops)
	present := mapset.NewThreadUnsafeSet[string]()
	for _, f := range factors {
		switch {
		case isConstantLeaf(f):
		case expr.IsLiteral(f):
			present.Add(literalVariable(f))
		default:
			return nil, fmt.Errorf("%w: %s is not a literal", ErrNotNormalForm, f)
		}
	}

	var missing []string
	for _, name := range expr.Sorted(vars) {
		if !present.Contains(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return term, nil
	}
	children := append([]expr.Node(nil), factors...)
	for _, name := range missing {
		children = append(children, expr.NewNary(ops.Or,
			expr.NewLeaf(name),
			expr.NewUnary(ops.Not, expr.NewLeaf(name)),
		))
	}
	if product, ok := term.(*expr.Nary); ok && product.Op == ops.And {
		product.Children = children
		return product, nil
	}
	return expr.NewNary(ops.And, children...), nil
}

// IsInExpandedForm reports whether every disjunct of tree is a minterm over
// vars: a conjunction holding exactly one literal per variable. The constant
// 0 is the empty disjunction; the constant 1 only qualifies without
// variables.
func IsInExpandedForm(tree expr.Node, vars mapset.Set[string], ops laws.Operators) bool {
	if leaf, ok := tree.(*expr.Leaf); ok && leaf.IsConstant() {
		return leaf.Value == expr.False || vars.Cardinality() == 0
	}
	for _, term := range disjuncts(tree, ops) {
		if !isMinterm(term, vars, ops) {
			return false
		}
	}
	return true
}

func isMinterm(term expr.Node, vars mapset.Set[string], ops laws.Operators) bool {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, f := range conjuncts(term, ops) {
		if !expr.IsLiteral(f) {
			return false
		}
		if !seen.Add(literalVariable(f)) {
			return false
		}
	}
	if seen.Cardinality() != vars.Cardinality() {
		return false
	}
	for _, name := range vars.ToSlice() {
		if !seen.Contains(name) {
			return false
		}
	}
	return true
}

func disjuncts(tree expr.Node, ops laws.Operators) []expr.Node {
	if sum, ok := tree.(*expr.Nary); ok && sum.Op == ops.Or {
		return sum.Children
	}
	return []expr.Node{tree}
}

func conjuncts(term expr.Node, ops laws.Operators) []expr.Node {
	if product, ok := term.(*expr.Nary); ok && product.Op == ops.And {
		return product.Children
	}
	return []expr.Node{term}
}

func literalVariable(n expr.Node) string {
	if u, ok := n.(*expr.Unary); ok {
		n = u.Left
	}
	return n.(*expr.Leaf).Value
}

func isConstantLeaf(n expr.Node) bool {
	leaf, ok := n.(*expr.Leaf)
	return ok && leaf.IsConstant()
}
