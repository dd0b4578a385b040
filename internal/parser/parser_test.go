package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/boolnorm/internal/expr"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"A", "A"},
		{"A + B * C", "A+B*C"},
		{"(A + B) * C", "(A+B)*C"},
		{"A & B | !C", "A*B+!C"},
		{"~~A", "!!A"},
		{"A'", "!A"},
		{"(AB)'", "!(A*B)"},
		{"A(AB)'CC", "A*!(A*B)*C*C"},
		{"A'B+B'C(A+C)", "!A*B+!B*C*(A+C)"},
		{"A > B > C", "A⇒B⇒C"},
		{"A ^ B + C", "A⊕B+C"},
		{"A = B", "A⇔B"},
		{"A ⊼ B", "A⊼B"},
		{"1 + 0A", "1+0*A"},
		{"!(A)(B)", "!A*B"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			n, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParseShape(t *testing.T) {
	t.Parallel()

	n := MustParse("A + B + C")
	top, ok := n.(*expr.Binary)
	require.True(t, ok)
	_, ok = top.Left.(*expr.Binary)
	assert.True(t, ok, "left-associative chains nest on the left")

	n = MustParse("A > B > C")
	top, ok = n.(*expr.Binary)
	require.True(t, ok)
	_, ok = top.Right.(*expr.Binary)
	assert.True(t, ok, "implication nests on the right")
}

func TestParseKeepSymbols(t *testing.T) {
	t.Parallel()

	n, err := Parse("AB'", KeepSymbols())
	require.NoError(t, err)
	assert.Equal(t, "A*B'", n.String())

	n, err = Parse("A&B", KeepSymbols())
	require.NoError(t, err)
	assert.Equal(t, "A&B", n.String())

	n, err = Parse("A&BC", KeepSymbols())
	require.NoError(t, err)
	assert.Equal(t, "A&B&C", n.String(), "implicit AND reuses the written symbol")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"A + 2", ErrInvalidCharacter},
		{"A $ B", ErrInvalidCharacter},
		{"(A + B", ErrUnbalancedParentheses},
		{"A + B)", ErrUnbalancedParentheses},
		{")A(", ErrUnbalancedParentheses},
		{"+A", ErrOperatorAtBoundary},
		{"A*", ErrOperatorAtBoundary},
		{"(A+)B", ErrOperatorAtBoundary},
		{"A!", ErrOperatorAtBoundary},
		{"'A", ErrOperatorAtBoundary},
		{"A*B&C", ErrMixedOperators},
		{"!A + ~B", ErrMixedOperators},
		{"A + * B", ErrMissingOperand},
		{"()", ErrMissingOperand},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseWithoutImplicitAnd(t *testing.T) {
	t.Parallel()

	_, err := Parse("AB", WithoutImplicitAnd())
	assert.ErrorIs(t, err, ErrMissingOperand)
}
