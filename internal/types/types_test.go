package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportLaws(t *testing.T) {
	t.Parallel()

	r := Report{Steps: []Step{
		{Expression: "!(A*B)"},
		{Expression: "!A+!B", Law: "De Morgan's Law"},
		{Expression: "!A", Law: "Absorption Law"},
		{Expression: "!A", Law: "De Morgan's Law"},
	}}
	assert.Equal(t, []string{"De Morgan's Law", "Absorption Law"}, r.Laws())
	assert.Empty(t, (&Report{}).Laws())
}
