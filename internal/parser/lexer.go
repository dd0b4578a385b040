package parser

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/gnolang/boolnorm/internal/expr"
)

type tokenKind int

const (
	tokenVariable tokenKind = iota
	tokenConstant
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
	meta expr.OperatorMetadata
}

func (t token) startsOperand() bool {
	switch t.kind {
	case tokenVariable, tokenConstant, tokenLeftParen:
		return true
	case tokenOperator:
		return t.meta.Notation == expr.Prefix
	}
	return false
}

func (t token) endsOperand() bool {
	switch t.kind {
	case tokenVariable, tokenConstant, tokenRightParen:
		return true
	case tokenOperator:
		return t.meta.Notation == expr.Postfix
	}
	return false
}

func (t token) isBinary() bool {
	return t.kind == tokenOperator && t.meta.Arity == expr.ArityBinary
}

// tokenize splits input into single-rune tokens, skipping whitespace.
func tokenize(input string) ([]token, error) {
	var tokens []token
	for i, r := range []rune(input) {
		if unicode.IsSpace(r) {
			continue
		}
		tok := token{text: string(r), pos: i}
		switch {
		case isVariable(r):
			tok.kind = tokenVariable
		case r == '0' || r == '1':
			tok.kind = tokenConstant
		case r == '(':
			tok.kind = tokenLeftParen
		case r == ')':
			tok.kind = tokenRightParen
		default:
			meta, ok := expr.Operators.Lookup(tok.text)
			if !ok {
				return nil, fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, r, i)
			}
			tok.kind = tokenOperator
			tok.meta = meta
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}
	return tokens, nil
}

func isVariable(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func checkParentheses(tokens []token) error {
	depth := 0
	for _, tok := range tokens {
		switch tok.kind {
		case tokenLeftParen:
			depth++
		case tokenRightParen:
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected ')' at position %d", ErrUnbalancedParentheses, tok.pos)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed '('", ErrUnbalancedParentheses, depth)
	}
	return nil
}

// checkMixedSymbols rejects expressions that spell one operator two ways.
func checkMixedSymbols(tokens []token) error {
	symbols := make(map[expr.OpName][]string)
	for _, tok := range tokens {
		if tok.kind != tokenOperator {
			continue
		}
		seen := symbols[tok.meta.Name]
		if !slices.Contains(seen, tok.text) {
			symbols[tok.meta.Name] = append(seen, tok.text)
		}
	}
	for name, seen := range symbols {
		if len(seen) > 1 {
			return fmt.Errorf("%w: %s written as %s", ErrMixedOperators, name, strings.Join(seen, " and "))
		}
	}
	return nil
}

// checkBoundaries rejects operators with nothing to apply to at either end
// of the expression or of a parenthesized group.
func checkBoundaries(tokens []token) error {
	for i, tok := range tokens {
		if tok.kind != tokenOperator {
			continue
		}
		atStart := i == 0 || tokens[i-1].kind == tokenLeftParen
		atEnd := i == len(tokens)-1 || tokens[i+1].kind == tokenRightParen
		needsLeft := tok.isBinary() || tok.meta.Notation == expr.Postfix
		needsRight := tok.isBinary() || tok.meta.Notation == expr.Prefix
		if (needsLeft && atStart) || (needsRight && atEnd) {
			return fmt.Errorf("%w: %q at position %d", ErrOperatorAtBoundary, tok.text, tok.pos)
		}
	}
	return nil
}

// insertImplicitAnd turns juxtaposition into conjunction: AB is A*B and
// A(B+C) is A*(B+C).
func insertImplicitAnd(tokens []token) []token {
	andSymbol := expr.Operators.Preferred(expr.OpAnd)
	for _, tok := range tokens {
		if tok.kind == tokenOperator && tok.meta.Name == expr.OpAnd {
			andSymbol = tok.text
			break
		}
	}
	andMeta, _ := expr.Operators.Lookup(andSymbol)

	out := make([]token, 0, len(tokens)*2)
	for i, tok := range tokens {
		if i > 0 && tokens[i-1].endsOperand() && tok.startsOperand() {
			out = append(out, token{kind: tokenOperator, text: andSymbol, pos: tok.pos, meta: andMeta})
		}
		out = append(out, tok)
	}
	return out
}
