package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(name string) *Leaf { return NewLeaf(name) }

func not(n Node) *Unary { return NewUnary("!", n) }

func and(children ...Node) *Nary { return NewNary("*", children...) }

func or(children ...Node) *Nary { return NewNary("+", children...) }

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		env  Assignment
		want bool
	}{
		{"constant true ignores env", NewLeaf(True), Assignment{"1": false}, true},
		{"constant false", NewLeaf(False), nil, false},
		{"unbound variable is false", v("A"), nil, false},
		{"bound variable", v("A"), Assignment{"A": true}, true},
		{"negation", not(v("A")), Assignment{"A": false}, true},
		{"and", and(v("A"), v("B"), v("C")), Assignment{"A": true, "B": true, "C": false}, false},
		{"or", or(v("A"), v("B")), Assignment{"B": true}, true},
		{"implies", NewBinary("⇒", v("A"), v("B")), Assignment{"A": true}, false},
		{"biconditional", NewBinary("=", v("A"), v("B")), Assignment{}, true},
		{"xor", NewBinary("^", v("A"), v("B")), Assignment{"B": true}, true},
		{"nand", NewBinary("⊼", v("A"), v("B")), Assignment{"A": true, "B": true}, false},
		{"nor", NewBinary("⊽", v("A"), v("B")), Assignment{}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.node.Evaluate(tt.env))
		})
	}
}

func TestEvaluateStrict(t *testing.T) {
	t.Parallel()

	node := and(v("A"), or(v("B"), not(v("C"))), NewLeaf(True))

	_, err := EvaluateStrict(node, Assignment{"A": true})
	require.ErrorIs(t, err, ErrUnboundVariable)
	assert.Contains(t, err.Error(), "B, C")

	got, err := EvaluateStrict(node, Assignment{"A": true, "B": false, "C": false})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFormatParentheses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"and binds tighter than or", NewBinary("+", v("A"), NewBinary("*", v("B"), v("C"))), "A+B*C"},
		{"or under and", NewBinary("*", v("A"), NewBinary("+", v("B"), v("C"))), "A*(B+C)"},
		{"left chain", NewBinary("*", NewBinary("*", v("A"), v("B")), v("C")), "A*B*C"},
		{"right nested left-assoc", NewBinary("*", v("A"), NewBinary("*", v("B"), v("C"))), "A*(B*C)"},
		{"right-assoc implication", NewBinary("⇒", v("A"), NewBinary("⇒", v("B"), v("C"))), "A⇒B⇒C"},
		{"left nested implication", NewBinary("⇒", NewBinary("⇒", v("A"), v("B")), v("C")), "(A⇒B)⇒C"},
		{"negated group", not(or(v("A"), v("B"))), "!(A+B)"},
		{"double negation", not(not(v("A"))), "!!A"},
		{"nary under nary", and(v("A"), or(v("B"), not(v("C")))), "A*(B+!C)"},
		{"postfix negation", NewUnary("'", and(v("A"), v("B"))), "(A*B)'"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestFormatSettings(t *testing.T) {
	t.Parallel()

	node := and(v("A"), or(v("B"), v("C")))
	assert.Equal(t, "A(B+C)", node.Format(0, false, false, RenderSettings{OmitAndOperator: true}))
	assert.Equal(t, "(A*(B+C))", node.Format(0, false, false, RenderSettings{ForceParentheses: true}))
	assert.Equal(t, `A \land (B \lor C)`, node.Format(0, false, false, RenderSettings{LaTeX: true}))

	node.Children[0].Attributes().Mark = Mark{Law: LawIdentity}
	light := node.Format(0, false, false, RenderSettings{LaTeX: true})
	assert.Contains(t, light, `\colorbox{peachpuff}{$A$}`)
	assert.Contains(t, light, `\text{Identity Law}`)
	dark := node.Format(0, false, false, RenderSettings{LaTeX: true, DarkMode: true})
	assert.Contains(t, dark, `\colorbox{sienna}{$A$}`)

	highlighted := node.Format(0, false, false, RenderSettings{
		Highlight: func(law LawType, text string) string { return "[" + text + "]" },
	})
	assert.Equal(t, "[A]*(B+C)", highlighted)
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	t.Run("commutative n-ary", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Canonical(or(v("B"), v("A"))), Canonical(or(v("A"), v("B"))))
		assert.Equal(t, "A*B+C", Canonical(or(v("C"), and(v("B"), v("A")))))
	})

	t.Run("commutative binary", func(t *testing.T) {
		t.Parallel()
		x := and(v("A"), not(v("C")))
		y := or(v("B"), v("D"))
		assert.Equal(t, Canonical(NewBinary("*", x, y)), Canonical(NewBinary("*", y, x)))
		assert.Equal(t, Canonical(NewBinary("⊕", v("A"), v("B"))), Canonical(NewBinary("⊕", v("B"), v("A"))))
	})

	t.Run("implication is ordered", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, Canonical(NewBinary("⇒", v("A"), v("B"))), Canonical(NewBinary("⇒", v("B"), v("A"))))
	})

	t.Run("nand grouping is kept", func(t *testing.T) {
		t.Parallel()
		left := NewBinary("⊼", NewBinary("⊼", v("A"), v("B")), v("C"))
		right := NewBinary("⊼", v("A"), NewBinary("⊼", v("B"), v("C")))
		assert.NotEqual(t, Canonical(left), Canonical(right))
	})

	t.Run("marks are ignored", func(t *testing.T) {
		t.Parallel()
		marked := or(v("A"), v("B"))
		marked.Mark = Mark{Law: LawAbsorption}
		assert.True(t, Equal(marked, or(v("B"), v("A"))))
	})
}

func TestBinaryToNary(t *testing.T) {
	t.Parallel()

	// ((A*B)*C)+(D+E)
	tree := NewBinary("+",
		NewBinary("*", NewBinary("*", v("A"), v("B")), v("C")),
		NewBinary("+", v("D"), v("E")),
	)
	tree.Root = true

	got := BinaryToNary(tree)
	top, ok := got.(*Nary)
	require.True(t, ok)
	assert.True(t, top.Root)
	assert.Equal(t, "+", top.Op)
	require.Len(t, top.Children, 3)
	product, ok := top.Children[0].(*Nary)
	require.True(t, ok)
	assert.Len(t, product.Children, 3)
	assert.Equal(t, "A*B*C+D+E", got.String())

	implication := BinaryToNary(NewBinary("⇒", NewBinary("*", v("A"), v("B")), v("C")))
	_, ok = implication.(*Binary)
	assert.True(t, ok, "non-associative operators stay binary")
}

func TestNaryToBinary(t *testing.T) {
	t.Parallel()

	tree := or(v("A"), v("B"), and(v("C"), v("D"), v("E")))
	tree.Root = true
	got := NaryToBinary(tree)

	top, ok := got.(*Binary)
	require.True(t, ok)
	assert.True(t, top.Root)
	assert.Equal(t, "A+B+C*D*E", got.String())
	_, ok = top.Left.(*Binary)
	assert.True(t, ok, "chains fold to the left")
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	children := FlattenChildren([]Node{v("A"), or(v("B"), or(v("C"), v("D"))), and(v("E"), v("F"))}, "+")
	require.Len(t, children, 4)
	assert.Equal(t, "C+D", children[2].String())

	tree := Flatten(or(v("A"), or(v("B"), or(v("C"), v("D")))))
	assert.Len(t, tree.(*Nary).Children, 4)
}

func TestDeepCopyAndMarks(t *testing.T) {
	t.Parallel()

	tree := and(v("A"), not(v("B")))
	tree.Root = true
	tree.Children[1].Attributes().Mark = Mark{Law: LawDeMorgan}

	c := DeepCopy(tree).(*Nary)
	assert.True(t, c.Root)
	assert.Equal(t, LawDeMorgan, FirstMark(c).Law)

	c.Children[0].(*Leaf).Value = "Z"
	assert.Equal(t, "A", tree.Children[0].(*Leaf).Value)

	ResetMarks(tree)
	assert.True(t, FirstMark(tree).IsZero())
	assert.Equal(t, LawDeMorgan, FirstMark(c).Law)
}

func TestTransferRoot(t *testing.T) {
	t.Parallel()

	from, to := v("A"), v("B")
	TransferRoot(from, to)
	assert.False(t, to.Root)

	from.Root = true
	TransferRoot(from, to)
	assert.False(t, from.Root)
	assert.True(t, to.Root)
}

func TestVariables(t *testing.T) {
	t.Parallel()

	tree := or(and(v("C"), v("A")), not(v("B")), NewLeaf(True), v("A"))
	assert.Equal(t, []string{"A", "B", "C"}, Sorted(Variables(tree)))
	assert.True(t, IsLiteral(not(v("B"))))
	assert.False(t, IsLiteral(not(NewLeaf(False))))
	assert.False(t, IsLiteral(and(v("A"), v("B"))))
}
