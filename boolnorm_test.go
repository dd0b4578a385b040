package boolnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("B+A")
	require.NoError(t, err)
	assert.Equal(t, "A+B", got)

	_, err = Parse("A+")
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	v, err := Evaluate("A>B", map[string]bool{"A": true, "B": false})
	require.NoError(t, err)
	assert.False(t, v)

	_, err = Evaluate("A*B", map[string]bool{"A": true})
	assert.Error(t, err)
}

func TestNormalForms(t *testing.T) {
	tests := []struct {
		name  string
		run   func(string) (*Result, error)
		input string
		want  string
	}{
		{"nnf", ToNNF, "!(A*B)", "!A+!B"},
		{"dnf absorption", ToDNF, "A+A*B", "A"},
		{"dnf distributive", ToDNF, "A*(B+C)", "A*B+A*C"},
		{"dnf contradiction", ToDNF, "A*!A", "0"},
		{"dnf negated constant", ToDNF, "!(A*0)", "1"},
		{"expanded negated constant", func(s string) (*Result, error) { return ToExpandedDNF(s, "B") }, "A*!1+A", "A*B+A*!B"},
		{"expanded", func(s string) (*Result, error) { return ToExpandedDNF(s) }, "A+B", "A*B+A*!B+!A*B"},
		{"expanded with variables", func(s string) (*Result, error) { return ToExpandedDNF(s, "B") }, "A", "A*B+A*!B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.run(tt.input)
			require.NoError(t, err)

			want, err := Parse(tt.want)
			require.NoError(t, err)
			assert.Equal(t, want, res.Canonical)

			require.NotEmpty(t, res.Steps)
			assert.Equal(t, tt.input, res.Steps[0].Expression)
			assert.Empty(t, res.Steps[0].Law)
			ok, err := Equivalent(tt.input, res.Expression)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestEquivalent(t *testing.T) {
	ok, err := Equivalent("!(A+B)", "!A*!B")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Equivalent("A+B", "A*B")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Equivalent("A+", "A")
	assert.Error(t, err)
}
