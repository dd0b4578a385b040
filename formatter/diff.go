package formatter

import (
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	insertStyle = color.New(color.FgGreen, color.Underline)
	deleteStyle = color.New(color.FgRed, color.CrossedOut)
)

// Diff shows the character edits that turn before into after. Without
// colors, deletions print as [-x-] and insertions as {+x+}.
func Diff(before, after string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			if color.NoColor {
				b.WriteString("{+" + d.Text + "+}")
			} else {
				b.WriteString(insertStyle.Sprint(d.Text))
			}
		case diffpatch.DiffDelete:
			if color.NoColor {
				b.WriteString("[-" + d.Text + "-]")
			} else {
				b.WriteString(deleteStyle.Sprint(d.Text))
			}
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
