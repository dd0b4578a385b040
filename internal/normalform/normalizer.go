// Package normalform drives expression trees to negation normal form,
// disjunctive normal form and expanded (minterm) disjunctive normal form.
//
// Every stage applies a fixed set of laws until the canonical form stops
// changing. A stage that is still changing after its iteration ceiling fails
// with ErrHardLimit.
package normalform

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/history"
	"github.com/gnolang/boolnorm/internal/laws"
)

const (
	DefaultHardLimit         = 100
	DefaultExpandedHardLimit = 10
)

// Stage names a normal form.
type Stage string

const (
	StageNNF         Stage = "nnf"
	StageDNF         Stage = "dnf"
	StageExpandedDNF Stage = "expanded-dnf"
)

// ParseStage accepts a stage name as written on the command line.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageNNF, StageDNF, StageExpandedDNF:
		return Stage(s), nil
	case "expand", "expanded":
		return StageExpandedDNF, nil
	}
	return "", fmt.Errorf("unknown normal form %q", s)
}

// Config holds the iteration ceilings and operator symbols.
type Config struct {
	HardLimit         int            `yaml:"hardLimit"`
	ExpandedHardLimit int            `yaml:"expandedHardLimit"`
	StepLimit         int            `yaml:"stepLimit"`
	Operators         laws.Operators `yaml:"operators"`
}

func DefaultConfig() Config {
	return Config{
		HardLimit:         DefaultHardLimit,
		ExpandedHardLimit: DefaultExpandedHardLimit,
		StepLimit:         history.DefaultStepLimit,
		Operators:         laws.DefaultOperators,
	}
}

// Result is the normalized tree together with its derivation.
type Result struct {
	Node    expr.Node
	History *history.History
}

// Normalizer runs the normal-form stages. It holds no per-run state and may
// be shared between goroutines as long as each works on its own tree.
type Normalizer struct {
	cfg     Config
	logger  *zap.Logger
	metrics *Metrics
}

type Option func(*Normalizer)

func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(n *Normalizer) {
		n.metrics = m
	}
}

// New returns a normalizer. Zero limits and empty operators fall back to
// the defaults. A negative StepLimit records history without a ceiling.
func New(cfg Config, opts ...Option) *Normalizer {
	def := DefaultConfig()
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = def.HardLimit
	}
	if cfg.ExpandedHardLimit <= 0 {
		cfg.ExpandedHardLimit = def.ExpandedHardLimit
	}
	if cfg.StepLimit == 0 {
		cfg.StepLimit = def.StepLimit
	}
	if cfg.Operators == (laws.Operators{}) {
		cfg.Operators = def.Operators
	}
	n := &Normalizer{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Config returns the effective configuration.
func (n *Normalizer) Config() Config {
	return n.cfg
}

// Run normalizes tree to the requested stage. variables is only used for
// StageExpandedDNF and may be nil.
func (n *Normalizer) Run(stage Stage, tree expr.Node, binaryInput bool, variables mapset.Set[string]) (*Result, error) {
	switch stage {
	case StageNNF:
		return n.ToNNF(tree, binaryInput)
	case StageDNF:
		return n.ToDNF(tree, binaryInput)
	case StageExpandedDNF:
		return n.ToExpandedDNF(tree, binaryInput, variables)
	}
	return nil, fmt.Errorf("unknown normal form %q", stage)
}

// ToNNF pushes negations down to the literals.
func (n *Normalizer) ToNNF(tree expr.Node, binaryInput bool) (*Result, error) {
	tree, h := n.start(tree, binaryInput)
	tree, err := n.nnf(tree, h)
	return n.finish(StageNNF, tree, h, err)
}

// ToDNF rewrites tree into a disjunction of conjunctions of literals.
func (n *Normalizer) ToDNF(tree expr.Node, binaryInput bool) (*Result, error) {
	tree, h := n.start(tree, binaryInput)
	tree, err := n.nnf(tree, h)
	if err == nil {
		tree, err = n.dnf(tree, h)
	}
	return n.finish(StageDNF, tree, h, err)
}

// ToExpandedDNF rewrites tree into a disjunction of minterms over variables
// and the variables of tree.
func (n *Normalizer) ToExpandedDNF(tree expr.Node, binaryInput bool, variables mapset.Set[string]) (*Result, error) {
	vars := expr.Variables(tree)
	if variables != nil {
		for _, name := range variables.ToSlice() {
			vars.Add(name)
		}
	}

	tree, h := n.start(tree, binaryInput)
	tree, err := n.nnf(tree, h)
	if err == nil {
		tree, err = n.dnf(tree, h)
	}
	if err == nil {
		tree, err = n.expanded(tree, h, vars)
	}
	return n.finish(StageExpandedDNF, tree, h, err)
}

func (n *Normalizer) start(tree expr.Node, binaryInput bool) (expr.Node, *history.History) {
	if binaryInput {
		tree = expr.BinaryToNary(tree)
	}
	return tree, history.New(tree, history.WithStepLimit(n.cfg.StepLimit))
}

func (n *Normalizer) finish(stage Stage, tree expr.Node, h *history.History, err error) (*Result, error) {
	n.metrics.observe(h.Versions())
	n.metrics.run(stage, err)
	if err != nil {
		n.logger.Error("Normalization failed", zap.String("stage", string(stage)), zap.Error(err))
		return nil, err
	}
	n.logger.Debug("Normalization finished",
		zap.String("stage", string(stage)),
		zap.String("result", tree.String()),
		zap.Int("versions", h.Len()),
	)
	return &Result{Node: tree, History: h}, nil
}

func (n *Normalizer) nnf(tree expr.Node, h *history.History) (expr.Node, error) {
	ops := n.cfg.Operators
	tree = laws.EliminateOperators(tree, laws.Params{Operator: ops.And, Dual: ops.Or, Not: ops.Not, History: h})
	tree = laws.DoubleNegation(tree, laws.Params{Not: ops.Not, History: h})
	if err := h.Err(); err != nil {
		return nil, err
	}

	tree, err := n.fixpoint(StageNNF, tree, h, n.cfg.HardLimit, func(tree expr.Node) expr.Node {
		tree = laws.DeMorgan(tree, laws.Params{Operator: ops.And, Dual: ops.Or, Not: ops.Not, History: h})
		tree = laws.Idempotency(tree, laws.Params{History: h})
		tree = laws.CombinedConstantLaws(tree, ops, h)
		return n.absorb(tree, h)
	})
	if err != nil {
		return nil, err
	}
	h.Commit(tree)
	return tree, h.Err()
}

func (n *Normalizer) dnf(tree expr.Node, h *history.History) (expr.Node, error) {
	ops := n.cfg.Operators
	tree, err := n.fixpoint(StageDNF, tree, h, n.cfg.HardLimit, func(tree expr.Node) expr.Node {
		tree = laws.Distributive(tree, laws.Params{Operator: ops.And, Dual: ops.Or, History: h})
		tree = laws.Idempotency(tree, laws.Params{History: h})
		tree = laws.CombinedConstantLaws(tree, ops, h)
		return n.absorb(tree, h)
	})
	if err != nil {
		return nil, err
	}
	h.Commit(tree)
	return tree, h.Err()
}

func (n *Normalizer) expanded(tree expr.Node, h *history.History, vars mapset.Set[string]) (expr.Node, error) {
	ops := n.cfg.Operators
	tree, err := ExpandNormalForm(tree, vars, ops)
	if err != nil {
		return nil, err
	}
	h.Commit(tree)

	limit := n.cfg.ExpandedHardLimit
	for i := 0; ; i++ {
		if err := h.Err(); err != nil {
			return nil, err
		}
		if IsInExpandedForm(tree, vars, ops) {
			break
		}
		if i == limit {
			n.metrics.hardLimit(StageExpandedDNF)
			return nil, fmt.Errorf("%w: %s not reached within %d iterations", ErrHardLimit, StageExpandedDNF, limit)
		}
		n.metrics.iteration(StageExpandedDNF)
		tree = laws.Distributive(tree, laws.Params{Operator: ops.And, Dual: ops.Or, History: h})
		tree = laws.Idempotency(tree, laws.Params{History: h})
		tree = laws.CombinedConstantLaws(tree, ops, h)
	}
	h.Commit(tree)
	return tree, h.Err()
}

func (n *Normalizer) absorb(tree expr.Node, h *history.History) expr.Node {
	ops := n.cfg.Operators
	tree = laws.Absorption(tree, laws.Params{Operator: ops.Or, Dual: ops.And, History: h})
	return laws.Absorption(tree, laws.Params{Operator: ops.And, Dual: ops.Or, History: h})
}

// fixpoint applies pass until the canonical form of tree stops changing.
func (n *Normalizer) fixpoint(stage Stage, tree expr.Node, h *history.History, limit int, pass func(expr.Node) expr.Node) (expr.Node, error) {
	prev := expr.Canonical(tree)
	for i := 0; i < limit; i++ {
		n.metrics.iteration(stage)
		tree = pass(tree)
		if err := h.Err(); err != nil {
			return nil, err
		}
		cur := expr.Canonical(tree)
		if cur == prev {
			n.logger.Debug("Fixpoint reached", zap.String("stage", string(stage)), zap.Int("iterations", i+1))
			return tree, nil
		}
		prev = cur
	}
	n.metrics.hardLimit(stage)
	return nil, fmt.Errorf("%w: %s did not converge within %d iterations", ErrHardLimit, stage, limit)
}
