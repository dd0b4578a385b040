// Package boolnorm rewrites boolean expressions into negation, disjunctive
// and expanded disjunctive normal form, recording every law applied on the
// way.
//
// Expressions use * for AND, + for OR and ! for NOT; juxtaposition is an
// implicit AND and 0 and 1 are the constants. XOR (^), implication (>),
// the biconditional (=), NAND (⊼) and NOR (⊽) are rewritten into those
// three operators before normalizing.
package boolnorm

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gnolang/boolnorm/internal/equiv"
	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/normalform"
	"github.com/gnolang/boolnorm/internal/parser"
)

// Step is one recorded version of a derivation.
type Step struct {
	Expression string
	// Law is the rewrite that produced the next step. It is empty for
	// the input and for stage results.
	Law string
}

// Result is a normalized expression and the steps leading to it.
type Result struct {
	Expression string
	// Canonical is Expression with commutative operands sorted.
	Canonical string
	Steps     []Step
}

// Parse checks input and returns its canonical rendering.
func Parse(input string) (string, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return "", err
	}
	return expr.Canonical(expr.BinaryToNary(tree)), nil
}

// Evaluate evaluates input under assignment. Every variable of input must be
// bound.
func Evaluate(input string, assignment map[string]bool) (bool, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return false, err
	}
	return expr.EvaluateStrict(tree, assignment)
}

// ToNNF rewrites input into negation normal form.
func ToNNF(input string) (*Result, error) {
	return run(normalform.StageNNF, input, nil)
}

// ToDNF rewrites input into disjunctive normal form.
func ToDNF(input string) (*Result, error) {
	return run(normalform.StageDNF, input, nil)
}

// ToExpandedDNF rewrites input into a disjunction of minterms over the
// variables of input and variables.
func ToExpandedDNF(input string, variables ...string) (*Result, error) {
	return run(normalform.StageExpandedDNF, input, variables)
}

// Equivalent reports whether a and b agree on every assignment.
func Equivalent(a, b string) (bool, error) {
	left, err := parser.Parse(a)
	if err != nil {
		return false, err
	}
	right, err := parser.Parse(b)
	if err != nil {
		return false, err
	}
	report, err := equiv.Check(left, right)
	if err != nil {
		return false, err
	}
	return report.Result == equiv.Equivalent, nil
}

func run(stage normalform.Stage, input string, variables []string) (*Result, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	res, err := normalform.New(normalform.DefaultConfig()).Run(stage, tree, true, mapset.NewThreadUnsafeSet(variables...))
	if err != nil {
		return nil, err
	}

	out := &Result{
		Expression: res.Node.String(),
		Canonical:  expr.Canonical(res.Node),
		Steps:      make([]Step, 0, res.History.Len()),
	}
	for _, v := range res.History.Versions() {
		out.Steps = append(out.Steps, Step{Expression: v.Node.String(), Law: string(v.Law)})
	}
	return out, nil
}
