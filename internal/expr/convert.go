package expr

import "slices"

// BinaryToNary rebuilds n bottom-up, coalescing chains of the same
// associative operator into n-ary nodes. Other binary operators stay binary.
func BinaryToNary(n Node) Node {
	switch t := n.(type) {
	case *Leaf:
		return t
	case *Unary:
		t.Left = BinaryToNary(t.Left)
		return t
	case *Binary:
		left := BinaryToNary(t.Left)
		right := BinaryToNary(t.Right)
		if !metadata(t.Op).Associative {
			t.Left, t.Right = left, right
			return t
		}
		children := slices.Concat(spliceSame(left, t.Op), spliceSame(right, t.Op))
		return &Nary{Attrs: t.Attrs, Op: t.Op, Children: children}
	case *Nary:
		for i, child := range t.Children {
			t.Children[i] = BinaryToNary(child)
		}
		t.Children = FlattenChildren(t.Children, t.Op)
		return t
	}
	return n
}

func spliceSame(n Node, op string) []Node {
	if nary, ok := n.(*Nary); ok && nary.Op == op {
		return nary.Children
	}
	return []Node{n}
}

// NaryToBinary left-folds every n-ary node into a chain of binary nodes.
func NaryToBinary(n Node) Node {
	switch t := n.(type) {
	case *Unary:
		t.Left = NaryToBinary(t.Left)
		return t
	case *Binary:
		t.Left = NaryToBinary(t.Left)
		t.Right = NaryToBinary(t.Right)
		return t
	case *Nary:
		acc := NaryToBinary(t.Children[0])
		for _, child := range t.Children[1:] {
			acc = NewBinary(t.Op, acc, NaryToBinary(child))
		}
		if top, ok := acc.(*Binary); ok {
			top.Attrs = t.Attrs
		}
		return acc
	}
	return n
}

// FlattenChildren splices the children of any same-operator n-ary child into
// the list. It flattens one level.
func FlattenChildren(children []Node, op string) []Node {
	out := make([]Node, 0, len(children))
	for _, child := range children {
		if nary, ok := child.(*Nary); ok && nary.Op == op {
			out = append(out, nary.Children...)
			continue
		}
		out = append(out, child)
	}
	return out
}

// Flatten applies FlattenChildren to every n-ary node of n, bottom-up.
func Flatten(n Node) Node {
	switch t := n.(type) {
	case *Unary:
		t.Left = Flatten(t.Left)
	case *Binary:
		t.Left = Flatten(t.Left)
		t.Right = Flatten(t.Right)
	case *Nary:
		for i, child := range t.Children {
			t.Children[i] = Flatten(child)
		}
		t.Children = FlattenChildren(t.Children, t.Op)
	}
	return n
}
