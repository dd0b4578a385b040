package truthtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/parser"
)

func TestCompileSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"A", "A"},
		{"!A", "!(A)"},
		{"A*B", "((A) && (B))"},
		{"A+B+C", "(((A) || (B)) || (C))"},
		{"A>B", "(!(A) || (B))"},
		{"A⊼B", "(!((A) && (B)))"},
		{"1*0", "((true) && (false))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			p, err := Compile(expr.BinaryToNary(parser.MustParse(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Source())
		})
	}
}

func TestProgramAgreesWithTree(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"A*B+!C",
		"A^B^C",
		"A>B>C",
		"A=B",
		"A⊽B+C",
		"!(A*B)*(A+C)",
	}

	for _, input := range inputs {
		tree := parser.MustParse(input)
		table, err := Build(tree, nil)
		require.NoError(t, err, input)
		for _, row := range table.Rows {
			assert.Equal(t, tree.Evaluate(row.Assignment), row.Value, "%s under %v", input, row.Assignment)
		}
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	table, err := Build(parser.MustParse("A*B"), []string{"C"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, table.Variables)
	assert.Len(t, table.Rows, 8)
	assert.Equal(t, expr.Assignment{"A": false, "B": false, "C": false}, table.Rows[0].Assignment)
	assert.Equal(t, 2, table.Count())
	for _, m := range table.Models() {
		assert.True(t, m["A"] && m["B"])
	}
}

func TestBuildConstant(t *testing.T) {
	t.Parallel()

	table, err := Build(parser.MustParse("1"), nil)
	require.NoError(t, err)
	assert.Empty(t, table.Variables)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 1, table.Count())
	assert.Equal(t, "| =\n| 1\n", table.String())
}

func TestTableEqual(t *testing.T) {
	t.Parallel()

	a, err := Build(parser.MustParse("!(A+B)"), nil)
	require.NoError(t, err)
	b, err := Build(parser.MustParse("!A*!B"), nil)
	require.NoError(t, err)
	c, err := Build(parser.MustParse("!A+!B"), nil)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTooManyVariables(t *testing.T) {
	t.Parallel()

	extra := make([]string, 0, MaxVariables+1)
	for i := range MaxVariables + 1 {
		extra = append(extra, string(rune('A'+i)))
	}
	_, err := Build(parser.MustParse("A"), extra)
	assert.ErrorIs(t, err, ErrTooManyVariables)
}
