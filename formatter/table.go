package formatter

import (
	"strings"

	"github.com/gnolang/boolnorm/internal/truthtable"
)

// GenerateTable renders a truth table with the satisfying rows colored.
func GenerateTable(input string, table *truthtable.Table) string {
	var b strings.Builder
	b.WriteString(formStyle.Sprint("table"))
	b.WriteString(": ")
	b.WriteString(input)
	b.WriteString("\n")

	for _, name := range table.Variables {
		b.WriteString(indexStyle.Sprint(name))
		b.WriteString(" ")
	}
	b.WriteString("| =\n")
	for _, row := range table.Rows {
		var line strings.Builder
		for _, name := range table.Variables {
			line.WriteString(bit(row.Assignment[name]))
			line.WriteString(" ")
		}
		line.WriteString("| ")
		line.WriteString(bit(row.Value))
		if row.Value {
			b.WriteString(resultStyle.Sprint(line.String()))
		} else {
			b.WriteString(line.String())
		}
		b.WriteString("\n")
	}
	b.WriteString(noteStyle.Sprintf("%d of %d rows true", table.Count(), len(table.Rows)))
	b.WriteString("\n")
	return b.String()
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
