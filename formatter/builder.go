package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	tt "github.com/gnolang/boolnorm/internal/types"
)

var (
	errorStyle  = color.New(color.FgRed, color.Bold)
	formStyle   = color.New(color.FgCyan, color.Bold)
	lawStyle    = color.New(color.FgYellow, color.Bold)
	indexStyle  = color.New(color.FgHiBlue, color.Bold)
	resultStyle = color.New(color.FgGreen, color.Bold)
	noteStyle   = color.New(color.FgHiBlack)
)

// Options select the parts of a derivation that are printed.
type Options struct {
	// Diff prints the change between consecutive steps instead of every
	// step in full.
	Diff bool
	// Rendered prints the configured rendering of each step when the engine
	// produced one.
	Rendered bool
}

const derivationTemplate = `{{header .Report}}
{{- range $i, $step := .Report.Steps}}
{{step $i $step}}
{{- end}}
{{result .Report}}
`

type derivationData struct {
	Report tt.Report
	Options
}

// GenerateDerivation formats the steps of report into a human-readable string.
func GenerateDerivation(report tt.Report, opts Options) string {
	if report.Error != "" {
		return errorStyle.Sprint("error: ") + report.Input + "\n" +
			noteStyle.Sprint("  = ") + report.Error + "\n"
	}

	width := len(fmt.Sprint(len(report.Steps)))
	funcMap := template.FuncMap{
		"header": header,
		"result": result,
		"step": func(i int, s tt.Step) string {
			var prev *tt.Step
			if i > 0 {
				prev = &report.Steps[i-1]
			}
			return step(i, width, s, prev, opts)
		},
	}

	tmpl := template.Must(template.New("derivation").Funcs(funcMap).Parse(derivationTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, derivationData{Report: report, Options: opts}); err != nil {
		return fmt.Sprintf("Error formatting derivation: %v", err)
	}
	return buf.String()
}

// GenerateDerivations formats every report, separated by blank lines.
func GenerateDerivations(reports []tt.Report, opts Options) string {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		parts = append(parts, GenerateDerivation(r, opts))
	}
	return strings.Join(parts, "\n")
}

// utils functions used in the text template

func header(r tt.Report) string {
	var b strings.Builder
	b.WriteString(formStyle.Sprint(r.Form))
	b.WriteString(": ")
	b.WriteString(r.Input)
	if len(r.Variables) > 0 {
		b.WriteString(noteStyle.Sprintf(" over {%s}", strings.Join(r.Variables, ", ")))
	}
	if r.Cached {
		b.WriteString(noteStyle.Sprint(" (cached)"))
	}
	return b.String()
}

func step(i, width int, s tt.Step, prev *tt.Step, opts Options) string {
	text := s.Expression
	switch {
	case opts.Rendered && s.Rendered != "":
		text = s.Rendered
	case opts.Diff && prev != nil:
		text = Diff(prev.Expression, s.Expression)
	}

	law := "input"
	if s.Law != "" {
		law = s.Law
	} else if i > 0 {
		law = "normalized"
	}
	return fmt.Sprintf("%s %s  %s",
		indexStyle.Sprintf("%*d |", width, i),
		text,
		lawStyle.Sprint(law),
	)
}

func result(r tt.Report) string {
	line := resultStyle.Sprint("= ") + r.Result
	if r.Verified != "" {
		line += noteStyle.Sprintf("  [%s]", r.Verified)
	}
	return line
}
