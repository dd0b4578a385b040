package expr

import "slices"

// DeepCopy returns an independent copy of n, marks and root flag included.
func DeepCopy(n Node) Node {
	switch t := n.(type) {
	case *Leaf:
		c := *t
		return &c
	case *Unary:
		return &Unary{Attrs: t.Attrs, Op: t.Op, Left: DeepCopy(t.Left)}
	case *Binary:
		return &Binary{Attrs: t.Attrs, Op: t.Op, Left: DeepCopy(t.Left), Right: DeepCopy(t.Right)}
	case *Nary:
		children := slices.Clone(t.Children)
		for i, child := range children {
			children[i] = DeepCopy(child)
		}
		return &Nary{Attrs: t.Attrs, Op: t.Op, Children: children}
	}
	return n
}

// ResetMarks clears the mark of n and every descendant.
func ResetMarks(n Node) {
	Walk(n, func(node Node) bool {
		node.Attributes().Mark = Mark{}
		return true
	})
}

// ClearRoot unsets the root flag everywhere in n.
func ClearRoot(n Node) {
	Walk(n, func(node Node) bool {
		node.Attributes().Root = false
		return true
	})
}

// TransferRoot moves the root flag from a node to the node replacing it.
func TransferRoot(from, to Node) {
	if from == to || !from.Attributes().Root {
		return
	}
	from.Attributes().Root = false
	to.Attributes().Root = true
}

// FirstMark returns the first mark found in pre-order.
func FirstMark(n Node) Mark {
	var found Mark
	Walk(n, func(node Node) bool {
		if m := node.Attributes().Mark; !m.IsZero() {
			found = m
			return false
		}
		return true
	})
	return found
}
