package equiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/parser"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want VerificationResult
	}{
		{"!(A*B)", "!A+!B", Equivalent},
		{"A+A*B", "A", Equivalent},
		{"A>B", "!A+B", Equivalent},
		{"A^B", "A*!B+!A*B", Equivalent},
		{"A=B", "!(A^B)", Equivalent},
		{"A⊼B", "!A+!B", Equivalent},
		{"A+!A", "1", Equivalent},
		{"A*B", "A+B", NotEquivalent},
		{"A", "B", NotEquivalent},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			t.Parallel()
			a := parser.MustParse(tt.a)
			b := parser.MustParse(tt.b)
			report, err := Check(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Result)
			if tt.want == NotEquivalent {
				require.NotNil(t, report.Counterexample)
				assert.NotEqual(t, a.Evaluate(report.Counterexample), b.Evaluate(report.Counterexample))
			}
		})
	}
}

func TestCheckNary(t *testing.T) {
	t.Parallel()

	binary := parser.MustParse("A*(B+C)")
	nary := expr.BinaryToNary(parser.MustParse("A*B+A*C"))
	report, err := Check(binary, nary)
	require.NoError(t, err)
	assert.Equal(t, Equivalent, report.Result)
}

func TestSatisfiableAndTautology(t *testing.T) {
	t.Parallel()

	sat, model, err := Satisfiable(parser.MustParse("A*!B"))
	require.NoError(t, err)
	require.True(t, sat)
	assert.Equal(t, expr.Assignment{"A": true, "B": false}, model)

	sat, _, err = Satisfiable(parser.MustParse("A*!A"))
	require.NoError(t, err)
	assert.False(t, sat)

	taut, err := Tautology(parser.MustParse("A+!A"))
	require.NoError(t, err)
	assert.True(t, taut)

	taut, err = Tautology(parser.MustParse("A+B"))
	require.NoError(t, err)
	assert.False(t, taut)
}

func TestCountModels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		vars  []string
		want  int
	}{
		{"A", nil, 1},
		{"A+B", nil, 3},
		{"A*B", []string{"C"}, 2},
		{"A^B^C", nil, 4},
		{"A*!A", nil, 0},
		{"1", []string{"A", "B"}, 4},
		{"0", nil, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := CountModels(parser.MustParse(tt.input), tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerificationResultString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Equivalent", Equivalent.String())
	assert.Equal(t, "NotEquivalent", NotEquivalent.String())
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "?", VerificationResult(0).String())
}
