package laws

import (
	"slices"

	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/history"
)

// Func applies one law with operators taken from ops.
type Func func(n expr.Node, ops Operators, h *history.History) expr.Node

type lawMap map[string]Func

var allLaws = lawMap{
	"double-negation": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return DoubleNegation(n, Params{Not: ops.Not, History: h})
	},
	"de-morgan": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return DeMorgan(n, Params{Operator: ops.And, Dual: ops.Or, Not: ops.Not, History: h})
	},
	"idempotency": func(n expr.Node, _ Operators, h *history.History) expr.Node {
		return Idempotency(n, Params{History: h})
	},
	"identity-and": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Identity(n, Params{Operator: ops.And, Element: expr.True, History: h})
	},
	"identity-or": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Identity(n, Params{Operator: ops.Or, Element: expr.False, History: h})
	},
	"dominant-and": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Dominant(n, Params{Operator: ops.And, Element: expr.False, History: h})
	},
	"dominant-or": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Dominant(n, Params{Operator: ops.Or, Element: expr.True, History: h})
	},
	"complement-and": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Complement(n, Params{Operator: ops.And, Not: ops.Not, Element: expr.False, History: h})
	},
	"complement-or": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Complement(n, Params{Operator: ops.Or, Not: ops.Not, Element: expr.True, History: h})
	},
	"negated-constant": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return NegatedConstant(n, Params{Not: ops.Not, History: h})
	},
	"absorption-or": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Absorption(n, Params{Operator: ops.Or, Dual: ops.And, History: h})
	},
	"absorption-and": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Absorption(n, Params{Operator: ops.And, Dual: ops.Or, History: h})
	},
	"distributive": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return Distributive(n, Params{Operator: ops.And, Dual: ops.Or, History: h})
	},
	"associativity": func(n expr.Node, _ Operators, h *history.History) expr.Node {
		return Associativity(n, Params{History: h})
	},
	"eliminate-operators": func(n expr.Node, ops Operators, h *history.History) expr.Node {
		return EliminateOperators(n, Params{Operator: ops.And, Dual: ops.Or, Not: ops.Not, History: h})
	},
	"constants": CombinedConstantLaws,
}

// Lookup returns the law registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := allLaws[name]
	return fn, ok
}

// Names lists the registered law names in order.
func Names() []string {
	names := make([]string, 0, len(allLaws))
	for name := range allLaws {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
