package formatter

import (
	"github.com/fatih/color"

	"github.com/gnolang/boolnorm/internal/expr"
)

var lawHighlights = map[expr.LawType]*color.Color{
	expr.LawDeMorgan:           color.New(color.FgBlue, color.Bold),
	expr.LawDoubleNegation:     color.New(color.FgBlue, color.Bold),
	expr.LawOperatorEliminated: color.New(color.FgBlue, color.Bold),
	expr.LawDistributive:       color.New(color.FgGreen, color.Bold),
	expr.LawAssociativity:      color.New(color.FgGreen, color.Bold),
	expr.LawAbsorption:         color.New(color.FgMagenta, color.Bold),
	expr.LawIdempotency:        color.New(color.FgMagenta, color.Bold),
	expr.LawComplement:         color.New(color.FgYellow, color.Bold),
	expr.LawDominant:           color.New(color.FgYellow, color.Bold),
	expr.LawIdentity:           color.New(color.FgYellow, color.Bold),
}

// Highlight colors text by the group of law. It fits
// expr.RenderSettings.Highlight. Without colors the text is bracketed.
func Highlight(law expr.LawType, text string) string {
	if color.NoColor {
		return "⟨" + text + "⟩"
	}
	style, ok := lawHighlights[law]
	if !ok {
		return noteStyle.Sprint(text)
	}
	return style.Sprint(text)
}
