package laws

import (
	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/history"
)

// CombinedConstantLaws runs the constant producing laws and then the constant
// eliminating ones, for both polarities:
// NegatedConstant, Complement(OR,1), Complement(AND,0), Dominant(OR,1),
// Dominant(AND,0), Identity(AND,1), Identity(OR,0).
func CombinedConstantLaws(n expr.Node, ops Operators, h *history.History) expr.Node {
	n = NegatedConstant(n, Params{Not: ops.Not, History: h})
	n = Complement(n, Params{Operator: ops.Or, Not: ops.Not, Element: expr.True, History: h})
	n = Complement(n, Params{Operator: ops.And, Not: ops.Not, Element: expr.False, History: h})
	n = Dominant(n, Params{Operator: ops.Or, Element: expr.True, History: h})
	n = Dominant(n, Params{Operator: ops.And, Element: expr.False, History: h})
	n = Identity(n, Params{Operator: ops.And, Element: expr.True, History: h})
	n = Identity(n, Params{Operator: ops.Or, Element: expr.False, History: h})
	return n
}
