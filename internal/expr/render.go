package expr

import (
	"fmt"
	"slices"
	"strings"
)

// RenderSettings controls Format output.
type RenderSettings struct {
	LaTeX            bool
	DarkMode         bool
	OmitAndOperator  bool
	ForceParentheses bool
	// Highlight decorates marked nodes in plain-text output.
	Highlight func(law LawType, text string) string
}

type colorPair struct {
	light string
	dark  string
}

var (
	blueGroup   = colorPair{light: "lightsteelblue", dark: "steelblue"}
	greenGroup  = colorPair{light: "palegreen", dark: "seagreen"}
	purpleGroup = colorPair{light: "thistle", dark: "purple"}
	orangeGroup = colorPair{light: "peachpuff", dark: "sienna"}
	grayGroup   = colorPair{light: "gray", dark: "dimgray"}
)

var lawColors = map[LawType]colorPair{
	LawDeMorgan:           blueGroup,
	LawDoubleNegation:     blueGroup,
	LawOperatorEliminated: blueGroup,
	LawDistributive:       greenGroup,
	LawAssociativity:      greenGroup,
	LawAbsorption:         purpleGroup,
	LawIdempotency:        purpleGroup,
	LawComplement:         orangeGroup,
	LawDominant:           orangeGroup,
	LawIdentity:           orangeGroup,
}

// MarkColor returns the color name used for m.
func MarkColor(m Mark, dark bool) string {
	if m.Color != "" {
		return m.Color
	}
	pair, ok := lawColors[m.Law]
	if !ok {
		pair = grayGroup
	}
	if dark {
		return pair.dark
	}
	return pair.light
}

func decorate(text string, m Mark, s RenderSettings) string {
	if m.IsZero() {
		return text
	}
	if s.LaTeX {
		return fmt.Sprintf(`\underbrace{\colorbox{%s}{$%s$}}_{\text{%s}}`, MarkColor(m, s.DarkMode), text, m.Law)
	}
	if s.Highlight != nil {
		return s.Highlight(m.Law, text)
	}
	return text
}

func operatorText(symbol string, meta OperatorMetadata, s RenderSettings) string {
	if s.OmitAndOperator && meta.Name == OpAnd {
		return ""
	}
	if s.LaTeX {
		return " " + meta.LaTeX + " "
	}
	return symbol
}

func needsParentheses(meta OperatorMetadata, parentPrecedence int, rightChild bool) bool {
	if meta.Precedence < parentPrecedence {
		return true
	}
	if meta.Precedence == parentPrecedence {
		if meta.Associativity == LeftAssociative && rightChild {
			return true
		}
		if meta.Associativity == RightAssociative && !rightChild {
			return true
		}
	}
	return false
}

func (l *Leaf) Format(_ int, _, _ bool, s RenderSettings) string {
	return decorate(l.Value, l.Mark, s)
}

func (u *Unary) Format(parentPrecedence int, _, sorted bool, s RenderSettings) string {
	meta := metadata(u.Op)
	child := u.Left.Format(meta.Precedence, false, sorted, s)
	op := u.Op
	if s.LaTeX {
		op = meta.LaTeX + " "
	}
	text := op + child
	if meta.Notation == Postfix && !s.LaTeX {
		text = child + op
	}
	text = decorate(text, u.Mark, s)
	if s.ForceParentheses || meta.Precedence < parentPrecedence {
		return "(" + text + ")"
	}
	return text
}

func (b *Binary) Format(parentPrecedence int, rightChild, sorted bool, s RenderSettings) string {
	meta := metadata(b.Op)
	var text string
	if sorted && meta.Commutative {
		// Associative operators render their operands as if grouping did
		// not matter; the rest keep the right-child rule on both sides.
		side := !meta.Associative
		parts := []string{
			b.Left.Format(meta.Precedence, side, sorted, s),
			b.Right.Format(meta.Precedence, side, sorted, s),
		}
		slices.Sort(parts)
		text = strings.Join(parts, operatorText(b.Op, meta, s))
	} else {
		left := b.Left.Format(meta.Precedence, false, sorted, s)
		right := b.Right.Format(meta.Precedence, true, sorted, s)
		text = left + operatorText(b.Op, meta, s) + right
	}
	text = decorate(text, b.Mark, s)
	if s.ForceParentheses || needsParentheses(meta, parentPrecedence, rightChild) {
		return "(" + text + ")"
	}
	return text
}

func (n *Nary) Format(parentPrecedence int, _, sorted bool, s RenderSettings) string {
	meta := metadata(n.Op)
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = child.Format(meta.Precedence, i > 0 && !sorted, sorted, s)
	}
	if sorted {
		slices.Sort(parts)
	}
	text := decorate(strings.Join(parts, operatorText(n.Op, meta, s)), n.Mark, s)
	if s.ForceParentheses || meta.Precedence < parentPrecedence {
		return "(" + text + ")"
	}
	return text
}

func (l *Leaf) String() string   { return l.Format(0, false, false, RenderSettings{}) }
func (u *Unary) String() string  { return u.Format(0, false, false, RenderSettings{}) }
func (b *Binary) String() string { return b.Format(0, false, false, RenderSettings{}) }
func (n *Nary) String() string   { return n.Format(0, false, false, RenderSettings{}) }
