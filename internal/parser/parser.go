// Package parser turns infix boolean formulas into expression trees.
//
// Variables are single ASCII letters and the constants are 0 and 1. Operators
// come from expr.Operators; juxtaposition means AND and a postfix ' negates
// the operand before it.
package parser

import (
	"fmt"

	"github.com/gnolang/boolnorm/internal/expr"
)

type config struct {
	implicitAnd bool
	keepSymbols bool
}

type Option func(*config)

// WithoutImplicitAnd makes juxtaposed operands an error.
func WithoutImplicitAnd() Option {
	return func(c *config) {
		c.implicitAnd = false
	}
}

// KeepSymbols builds nodes with the symbols as written instead of the
// preferred symbol of each operator.
func KeepSymbols() Option {
	return func(c *config) {
		c.keepSymbols = true
	}
}

// Parse validates input and builds a binary tree from it.
func Parse(input string, opts ...Option) (expr.Node, error) {
	cfg := config{implicitAnd: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if err := checkParentheses(tokens); err != nil {
		return nil, err
	}
	if err := checkMixedSymbols(tokens); err != nil {
		return nil, err
	}
	if err := checkBoundaries(tokens); err != nil {
		return nil, err
	}
	if cfg.implicitAnd {
		tokens = insertImplicitAnd(tokens)
	}

	rpn, err := toPostfix(tokens)
	if err != nil {
		return nil, err
	}
	return build(rpn, cfg)
}

// MustParse is like Parse but panics on error.
func MustParse(input string, opts ...Option) expr.Node {
	n, err := Parse(input, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// toPostfix reorders tokens with the shunting-yard algorithm.
func toPostfix(tokens []token) ([]token, error) {
	var output, stack []token
	for _, tok := range tokens {
		switch tok.kind {
		case tokenVariable, tokenConstant:
			output = append(output, tok)
		case tokenLeftParen:
			stack = append(stack, tok)
		case tokenRightParen:
			for len(stack) > 0 && stack[len(stack)-1].kind != tokenLeftParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: ')' at position %d", ErrMismatchedParentheses, tok.pos)
			}
			stack = stack[:len(stack)-1]
		case tokenOperator:
			switch {
			case tok.meta.Notation == expr.Postfix:
				// binds tighter than anything, so it applies right away
				output = append(output, tok)
			case tok.meta.Notation == expr.Prefix:
				stack = append(stack, tok)
			default:
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.kind != tokenOperator || !popsBefore(top.meta, tok.meta) {
						break
					}
					output = append(output, top)
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, tok)
			}
		default:
			return nil, fmt.Errorf("%w %q at position %d", ErrUnknownToken, tok.text, tok.pos)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.kind == tokenLeftParen {
			return nil, fmt.Errorf("%w: '(' at position %d", ErrMismatchedParentheses, top.pos)
		}
		output = append(output, top)
		stack = stack[:len(stack)-1]
	}
	return output, nil
}

func popsBefore(top, incoming expr.OperatorMetadata) bool {
	if top.Precedence != incoming.Precedence {
		return top.Precedence > incoming.Precedence
	}
	return incoming.Associativity == expr.LeftAssociative
}

func build(rpn []token, cfg config) (expr.Node, error) {
	var stack []expr.Node
	pop := func(tok token) (expr.Node, error) {
		if len(stack) == 0 {
			return nil, fmt.Errorf("%w for %q at position %d", ErrMissingOperand, tok.text, tok.pos)
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}

	for _, tok := range rpn {
		switch tok.kind {
		case tokenVariable, tokenConstant:
			stack = append(stack, expr.NewLeaf(tok.text))
		case tokenOperator:
			symbol := tok.text
			if !cfg.keepSymbols {
				symbol = expr.Operators.Preferred(tok.meta.Name)
			}
			if tok.meta.Arity == expr.ArityUnary {
				operand, err := pop(tok)
				if err != nil {
					return nil, err
				}
				stack = append(stack, expr.NewUnary(symbol, operand))
				continue
			}
			right, err := pop(tok)
			if err != nil {
				return nil, err
			}
			left, err := pop(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, expr.NewBinary(symbol, left, right))
		default:
			return nil, fmt.Errorf("%w %q at position %d", ErrUnknownToken, tok.text, tok.pos)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d operands left without an operator", ErrMissingOperand, len(stack))
	}
	return stack[0], nil
}
