// Package internal provides the core of the boolnorm boolean simplifier.
//
// The simplifier rewrites boolean expressions into negation normal form,
// disjunctive normal form and expanded disjunctive normal form, recording
// every law it applies so the derivation can be shown step by step.
//
// Key components:
//
// Engine: ties the parser, the normalizer, the SAT based verifier and the
// result cache together. It is what the command line and the simplify
// package talk to.
//
// Cache: a gob backed store of reports keyed by expression, target form and
// settings. Entries expire after a maximum age and are dropped as a whole
// when the configuration file changes.
//
// Watcher: follows an expressions file and calls back after it is written.
//
// The expression model, the laws and the normal form stages live in the
// expr, laws, history and normalform subpackages.
//
// Usage:
//
//	engine, err := internal.NewEngine(normalform.DefaultConfig(), nil)
//	if err != nil {
//	    // handle error
//	}
//
//	report, err := engine.Run("A*!(A*B)", normalform.StageDNF, nil)
//	if err != nil {
//	    // handle error
//	}
//
//	for _, step := range report.Steps {
//	    fmt.Printf("%-20s %s\n", step.Law, step.Expression)
//	}
//
// This package is intended for internal use within boolnorm and should not be
// imported by external packages.
package internal
