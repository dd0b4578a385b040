// Package equiv decides satisfiability and equivalence of expression trees
// with the gini SAT solver.
package equiv

import (
	"errors"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/gnolang/boolnorm/internal/expr"
)

// ErrTooManyModels is returned when model enumeration passes its bound.
var ErrTooManyModels = errors.New("too many models to enumerate")

// MaxModels bounds CountModels.
const MaxModels = 1 << 16

// VerificationResult represents the result of an equivalence check.
type VerificationResult int

const (
	_ VerificationResult = iota
	// Equivalent indicates both expressions agree on every assignment.
	Equivalent
	// NotEquivalent indicates a counterexample exists.
	NotEquivalent
	// Unknown indicates the solver gave no answer.
	Unknown
)

func (r VerificationResult) String() string {
	switch r {
	case Equivalent:
		return "Equivalent"
	case NotEquivalent:
		return "NotEquivalent"
	case Unknown:
		return "Unknown"
	default:
		return "?"
	}
}

// Report is the outcome of Check.
type Report struct {
	Result VerificationResult
	// Counterexample is an assignment on which the expressions differ.
	Counterexample expr.Assignment
}

// circuit translates trees into one shared gini circuit.
type circuit struct {
	c    *logic.C
	vars map[string]z.Lit
}

func newCircuit() *circuit {
	return &circuit{c: logic.NewC(), vars: make(map[string]z.Lit)}
}

func (b *circuit) variable(name string) z.Lit {
	if lit, ok := b.vars[name]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[name] = lit
	return lit
}

func (b *circuit) build(n expr.Node) (z.Lit, error) {
	switch t := n.(type) {
	case *expr.Leaf:
		switch t.Value {
		case expr.True:
			return b.c.T, nil
		case expr.False:
			return b.c.F, nil
		}
		return b.variable(t.Value), nil
	case *expr.Unary:
		if expr.NameOf(t.Op) != expr.OpNot {
			return z.LitNull, fmt.Errorf("unsupported unary operator %q", t.Op)
		}
		inner, err := b.build(t.Left)
		if err != nil {
			return z.LitNull, err
		}
		return inner.Not(), nil
	case *expr.Binary:
		l, err := b.build(t.Left)
		if err != nil {
			return z.LitNull, err
		}
		r, err := b.build(t.Right)
		if err != nil {
			return z.LitNull, err
		}
		return b.binary(expr.NameOf(t.Op), l, r)
	case *expr.Nary:
		lits := make([]z.Lit, 0, len(t.Children))
		for _, child := range t.Children {
			lit, err := b.build(child)
			if err != nil {
				return z.LitNull, err
			}
			lits = append(lits, lit)
		}
		switch expr.NameOf(t.Op) {
		case expr.OpAnd:
			return b.c.Ands(lits...), nil
		case expr.OpOr:
			return b.c.Ors(lits...), nil
		}
		acc := lits[0]
		for _, lit := range lits[1:] {
			next, err := b.binary(expr.NameOf(t.Op), acc, lit)
			if err != nil {
				return z.LitNull, err
			}
			acc = next
		}
		return acc, nil
	}
	return z.LitNull, fmt.Errorf("unsupported node %T", n)
}

func (b *circuit) binary(name expr.OpName, l, r z.Lit) (z.Lit, error) {
	switch name {
	case expr.OpAnd:
		return b.c.And(l, r), nil
	case expr.OpOr:
		return b.c.Or(l, r), nil
	case expr.OpXor:
		return b.c.Xor(l, r), nil
	case expr.OpImplies:
		return b.c.Implies(l, r), nil
	case expr.OpBiconditional:
		return b.c.Xor(l, r).Not(), nil
	case expr.OpNand:
		return b.c.And(l, r).Not(), nil
	case expr.OpNor:
		return b.c.Or(l, r).Not(), nil
	}
	return z.LitNull, fmt.Errorf("unsupported binary operator %s", name)
}

func (b *circuit) solver() *gini.Gini {
	g := gini.New()
	b.c.ToCnf(g)
	// the constant is an ordinary variable to the solver
	g.Add(b.c.T)
	g.Add(0)
	return g
}

func (b *circuit) model(g *gini.Gini) expr.Assignment {
	env := make(expr.Assignment, len(b.vars))
	for name, lit := range b.vars {
		env[name] = g.Value(lit)
	}
	return env
}

// Check decides whether a and b are equivalent.
func Check(a, b expr.Node) (Report, error) {
	c := newCircuit()
	la, err := c.build(a)
	if err != nil {
		return Report{Result: Unknown}, err
	}
	lb, err := c.build(b)
	if err != nil {
		return Report{Result: Unknown}, err
	}

	miter := c.c.Xor(la, lb)
	g := c.solver()
	g.Assume(miter)
	switch g.Solve() {
	case 1:
		return Report{Result: NotEquivalent, Counterexample: c.model(g)}, nil
	case -1:
		return Report{Result: Equivalent}, nil
	}
	return Report{Result: Unknown}, nil
}

// Satisfiable reports whether some assignment makes n true and returns one.
func Satisfiable(n expr.Node) (bool, expr.Assignment, error) {
	c := newCircuit()
	root, err := c.build(n)
	if err != nil {
		return false, nil, err
	}
	g := c.solver()
	g.Assume(root)
	if g.Solve() != 1 {
		return false, nil, nil
	}
	return true, c.model(g), nil
}

// Tautology reports whether n is true under every assignment.
func Tautology(n expr.Node) (bool, error) {
	sat, _, err := Satisfiable(expr.NewUnary(expr.Operators.Preferred(expr.OpNot), n))
	if err != nil {
		return false, err
	}
	return !sat, nil
}

// CountModels counts the assignments over variables, plus the variables of
// n, that make n true. It enumerates models with blocking clauses.
func CountModels(n expr.Node, variables []string) (int, error) {
	c := newCircuit()
	root, err := c.build(n)
	if err != nil {
		return 0, err
	}
	free := 0
	for _, name := range variables {
		if _, ok := c.vars[name]; !ok {
			free++
		}
	}

	g := c.solver()
	g.Add(root)
	g.Add(0)

	lits := make([]z.Lit, 0, len(c.vars))
	for _, lit := range c.vars {
		lits = append(lits, lit)
	}

	count := 0
	for g.Solve() == 1 {
		count++
		if count > MaxModels {
			return 0, ErrTooManyModels
		}
		for _, lit := range lits {
			if g.Value(lit) {
				g.Add(lit.Not())
			} else {
				g.Add(lit)
			}
		}
		g.Add(0)
	}
	return count << free, nil
}
