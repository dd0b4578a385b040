package parser

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every input error the parser reports.
var ErrMalformed = errors.New("malformed expression")

var (
	ErrEmpty                 = fmt.Errorf("%w: empty expression", ErrMalformed)
	ErrInvalidCharacter      = fmt.Errorf("%w: invalid character", ErrMalformed)
	ErrUnbalancedParentheses = fmt.Errorf("%w: unbalanced parentheses", ErrMalformed)
	ErrOperatorAtBoundary    = fmt.Errorf("%w: operator at expression boundary", ErrMalformed)
	ErrMixedOperators        = fmt.Errorf("%w: mixed operator symbols", ErrMalformed)
	ErrMismatchedParentheses = fmt.Errorf("%w: mismatched parentheses", ErrMalformed)
	ErrMissingOperand        = fmt.Errorf("%w: missing operand", ErrMalformed)
	ErrUnknownToken          = fmt.Errorf("%w: unknown token", ErrMalformed)
)
