package normalform

import "errors"

var (
	// ErrHardLimit reports a stage that did not reach a fixpoint within its
	// iteration ceiling.
	ErrHardLimit = errors.New("HARD_LIMIT reached")
	// ErrNotNormalForm reports a disjunct that is not a conjunction of literals.
	ErrNotNormalForm = errors.New("expression is not in disjunctive normal form")
)
