package expr

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrUnboundVariable is returned when an assignment lacks a variable the
// expression needs.
var ErrUnboundVariable = errors.New("unbound variable")

// Assignment binds variable names to truth values.
type Assignment map[string]bool

func (l *Leaf) Evaluate(env Assignment) bool {
	switch l.Value {
	case False:
		return false
	case True:
		return true
	}
	return env[l.Value]
}

func (u *Unary) Evaluate(env Assignment) bool {
	if meta := metadata(u.Op); meta.Name != OpNot {
		panic(fmt.Sprintf("expr: %s is not a unary operator", meta.Name))
	}
	return !u.Left.Evaluate(env)
}

func (b *Binary) Evaluate(env Assignment) bool {
	return applyBinary(metadata(b.Op).Name, b.Left.Evaluate(env), b.Right.Evaluate(env))
}

func (n *Nary) Evaluate(env Assignment) bool {
	name := metadata(n.Op).Name
	result := n.Children[0].Evaluate(env)
	for _, child := range n.Children[1:] {
		result = applyBinary(name, result, child.Evaluate(env))
	}
	return result
}

// Variables collects the variable names used in n.
func Variables(n Node) mapset.Set[string] {
	vars := mapset.NewThreadUnsafeSet[string]()
	Walk(n, func(node Node) bool {
		if leaf, ok := node.(*Leaf); ok && !leaf.IsConstant() {
			vars.Add(leaf.Value)
		}
		return true
	})
	return vars
}

// Sorted returns the members of vars in ascending order.
func Sorted(vars mapset.Set[string]) []string {
	out := vars.ToSlice()
	slices.Sort(out)
	return out
}

// EvaluateStrict evaluates n after checking that env binds every variable.
func EvaluateStrict(n Node, env Assignment) (bool, error) {
	var missing []string
	for _, name := range Sorted(Variables(n)) {
		if _, ok := env[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Errorf("%w: %s", ErrUnboundVariable, strings.Join(missing, ", "))
	}
	return n.Evaluate(env), nil
}
