// Package truthtable evaluates expression trees over every assignment of
// their variables. Trees are compiled to expr-lang programs so the table is
// produced by an evaluator independent of the tree walker in package expr.
package truthtable

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/gnolang/boolnorm/internal/expr"
)

// MaxVariables bounds the number of columns of a table.
const MaxVariables = 20

var ErrTooManyVariables = errors.New("too many variables for a truth table")

// Program is a compiled expression.
type Program struct {
	source    string
	variables []string
	program   *vm.Program
}

// Compile translates n to an expr-lang boolean program.
func Compile(n expr.Node) (*Program, error) {
	var sb strings.Builder
	if err := render(&sb, n); err != nil {
		return nil, err
	}
	vars := expr.Sorted(expr.Variables(n))

	env := make(map[string]any, len(vars))
	for _, name := range vars {
		env[name] = false
	}
	program, err := exprlang.Compile(sb.String(), exprlang.Env(env), exprlang.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile %q: %w", sb.String(), err)
	}
	return &Program{source: sb.String(), variables: vars, program: program}, nil
}

// Source returns the expr-lang text of the program.
func (p *Program) Source() string {
	return p.source
}

// Variables returns the variables the program reads, sorted.
func (p *Program) Variables() []string {
	return p.variables
}

// Eval runs the program. Variables missing from a are false.
func (p *Program) Eval(a expr.Assignment) (bool, error) {
	env := make(map[string]any, len(p.variables))
	for _, name := range p.variables {
		env[name] = a[name]
	}
	out, err := exprlang.Run(p.program, env)
	if err != nil {
		return false, err
	}
	value, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("program returned %T", out)
	}
	return value, nil
}

func render(sb *strings.Builder, n expr.Node) error {
	switch t := n.(type) {
	case *expr.Leaf:
		switch t.Value {
		case expr.True:
			sb.WriteString("true")
		case expr.False:
			sb.WriteString("false")
		default:
			sb.WriteString(t.Value)
		}
		return nil
	case *expr.Unary:
		if expr.NameOf(t.Op) != expr.OpNot {
			return fmt.Errorf("unsupported unary operator %q", t.Op)
		}
		sb.WriteString("!")
		return group(sb, t.Left)
	case *expr.Binary:
		return operation(sb, t.Op, []expr.Node{t.Left, t.Right})
	case *expr.Nary:
		return operation(sb, t.Op, t.Children)
	}
	return fmt.Errorf("unsupported node %T", n)
}

func group(sb *strings.Builder, n expr.Node) error {
	sb.WriteString("(")
	if err := render(sb, n); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}

// operation folds children left to right, matching the tree evaluator.
func operation(sb *strings.Builder, op string, children []expr.Node) error {
	var prefix, infix, suffix string
	switch expr.NameOf(op) {
	case expr.OpAnd:
		infix = " && "
	case expr.OpOr:
		infix = " || "
	case expr.OpXor:
		infix = " != "
	case expr.OpBiconditional:
		infix = " == "
	case expr.OpImplies:
		prefix, infix = "!", " || "
	case expr.OpNand:
		prefix, infix, suffix = "!(", " && ", ")"
	case expr.OpNor:
		prefix, infix, suffix = "!(", " || ", ")"
	default:
		return fmt.Errorf("unsupported operator %q", op)
	}

	var acc strings.Builder
	if err := group(&acc, children[0]); err != nil {
		return err
	}
	for _, child := range children[1:] {
		left := acc.String()
		acc.Reset()
		acc.WriteString("(")
		acc.WriteString(prefix)
		acc.WriteString(left)
		acc.WriteString(infix)
		if err := group(&acc, child); err != nil {
			return err
		}
		acc.WriteString(suffix)
		acc.WriteString(")")
	}
	sb.WriteString(acc.String())
	return nil
}

// Row is one assignment and the value of the expression under it.
type Row struct {
	Assignment expr.Assignment `json:"assignment"`
	Value      bool            `json:"value"`
}

// Table lists every assignment of Variables. Rows are ordered as binary
// numbers with the first variable as the most significant bit.
type Table struct {
	Variables []string `json:"variables"`
	Rows      []Row    `json:"rows"`
}

// Build evaluates n under every assignment of its variables and extra.
func Build(n expr.Node, extra []string) (*Table, error) {
	p, err := Compile(n)
	if err != nil {
		return nil, err
	}
	vars := expr.Variables(n)
	for _, name := range extra {
		vars.Add(name)
	}
	columns := expr.Sorted(vars)
	if len(columns) > MaxVariables {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyVariables, len(columns), MaxVariables)
	}

	table := &Table{Variables: columns, Rows: make([]Row, 0, 1<<len(columns))}
	for i := range 1 << len(columns) {
		a := make(expr.Assignment, len(columns))
		for j, name := range columns {
			a[name] = i&(1<<(len(columns)-1-j)) != 0
		}
		value, err := p.Eval(a)
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, Row{Assignment: a, Value: value})
	}
	return table, nil
}

// Count returns the number of satisfying rows.
func (t *Table) Count() int {
	count := 0
	for _, row := range t.Rows {
		if row.Value {
			count++
		}
	}
	return count
}

// Models returns the satisfying assignments.
func (t *Table) Models() []expr.Assignment {
	var out []expr.Assignment
	for _, row := range t.Rows {
		if row.Value {
			out = append(out, row.Assignment)
		}
	}
	return out
}

// Equal reports whether both tables have the same columns and values.
func (t *Table) Equal(other *Table) bool {
	if !slices.Equal(t.Variables, other.Variables) || len(t.Rows) != len(other.Rows) {
		return false
	}
	for i := range t.Rows {
		if t.Rows[i].Value != other.Rows[i].Value {
			return false
		}
	}
	return true
}

// String renders the table with 0 and 1 cells.
func (t *Table) String() string {
	var sb strings.Builder
	for _, name := range t.Variables {
		sb.WriteString(name)
		sb.WriteString(" ")
	}
	sb.WriteString("| =\n")
	for _, row := range t.Rows {
		for _, name := range t.Variables {
			sb.WriteString(bit(row.Assignment[name]))
			sb.WriteString(" ")
		}
		sb.WriteString("| ")
		sb.WriteString(bit(row.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
