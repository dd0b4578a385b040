// Package laws implements the boolean rewrite laws. Every law is a total
// function over expression trees: when it does not apply it returns its
// input, after recursing into it.
//
// Laws rewrite the tree they are given in place. Replacements are spliced into
// the parent slot so a History attached through Params always sees the live
// tree, and the root flag moves with every replacement of the top node.
package laws

import (
	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/history"
)

// Operators names the symbols the laws build and match.
type Operators struct {
	And string `yaml:"and"`
	Or  string `yaml:"or"`
	Not string `yaml:"not"`
}

// DefaultOperators are the boolean defaults.
var DefaultOperators = Operators{And: "*", Or: "+", Not: "!"}

// Params configures one law invocation. Each law documents which fields it
// reads.
type Params struct {
	// Operator is the operator of the n-ary nodes the law rewrites.
	Operator string
	// Dual is the other binary operator.
	Dual string
	Not  string
	// Element is the identity, dominant or resulting constant.
	Element string
	History *history.History
}

// slot addresses the position a node occupies in its parent. The zero slot
// is the top of the tree.
type slot struct {
	parent expr.Node
	index  int
}

func (s slot) set(n expr.Node) {
	switch p := s.parent.(type) {
	case *expr.Unary:
		p.Left = n
	case *expr.Binary:
		if s.index == 0 {
			p.Left = n
		} else {
			p.Right = n
		}
	case *expr.Nary:
		p.Children[s.index] = n
	}
}

// replace swaps old for repl in the live tree. With a history the snapshot is
// taken while old is still in place and marked with law.
func replace(old, repl expr.Node, at slot, law expr.LawType, h *history.History) expr.Node {
	expr.TransferRoot(old, repl)
	if h != nil {
		old.Attributes().Mark = expr.Mark{Law: law}
		h.Snapshot(repl)
	}
	at.set(repl)
	return repl
}

// splice swaps old for repl without recording a version. It finishes a
// rewrite whose snapshot has already been taken.
func splice(old, repl expr.Node, at slot, h *history.History) expr.Node {
	expr.TransferRoot(old, repl)
	h.Follow(repl)
	at.set(repl)
	return repl
}

// touch marks nodes with law and snapshots before an in-place edit of n.
func touch(n expr.Node, law expr.LawType, h *history.History, marked ...expr.Node) {
	if h == nil {
		return
	}
	for _, m := range marked {
		m.Attributes().Mark = expr.Mark{Law: law}
	}
	h.Snapshot(n)
}

type rule func(n expr.Node, at slot) expr.Node

// bottomUp rewrites the operands of n first and then hands n to fn.
func bottomUp(n expr.Node, at slot, fn rule) expr.Node {
	switch t := n.(type) {
	case *expr.Unary:
		t.Left = bottomUp(t.Left, slot{t, 0}, fn)
	case *expr.Binary:
		t.Left = bottomUp(t.Left, slot{t, 0}, fn)
		t.Right = bottomUp(t.Right, slot{t, 1}, fn)
	case *expr.Nary:
		for i, child := range t.Children {
			t.Children[i] = bottomUp(child, slot{t, i}, fn)
		}
	}
	return fn(n, at)
}

// topRule reports whether it replaced n.
type topRule func(n expr.Node, at slot) (expr.Node, bool)

// topDown tries fn on n before its operands and continues into whatever
// replaced n. fn is tried once more after the operands changed.
func topDown(n expr.Node, at slot, fn topRule) expr.Node {
	if repl, ok := fn(n, at); ok {
		return topDown(repl, at, fn)
	}
	switch t := n.(type) {
	case *expr.Leaf:
		return t
	case *expr.Unary:
		t.Left = topDown(t.Left, slot{t, 0}, fn)
	case *expr.Binary:
		t.Left = topDown(t.Left, slot{t, 0}, fn)
		t.Right = topDown(t.Right, slot{t, 1}, fn)
	case *expr.Nary:
		for i, child := range t.Children {
			t.Children[i] = topDown(child, slot{t, i}, fn)
		}
		t.Children = expr.FlattenChildren(t.Children, t.Op)
	}
	if repl, ok := fn(n, at); ok {
		return topDown(repl, at, fn)
	}
	return n
}

func dualOf(op string, p Params) (string, bool) {
	switch op {
	case p.Operator:
		return p.Dual, true
	case p.Dual:
		return p.Operator, true
	}
	return "", false
}

func filter(children []expr.Node, drop map[int]bool) []expr.Node {
	out := make([]expr.Node, 0, len(children)-len(drop))
	for i, child := range children {
		if !drop[i] {
			out = append(out, child)
		}
	}
	return out
}
