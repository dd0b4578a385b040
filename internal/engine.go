package internal

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/internal/equiv"
	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/history"
	"github.com/gnolang/boolnorm/internal/laws"
	"github.com/gnolang/boolnorm/internal/normalform"
	"github.com/gnolang/boolnorm/internal/parser"
	"github.com/gnolang/boolnorm/internal/truthtable"
	tt "github.com/gnolang/boolnorm/internal/types"
)

var (
	ErrUnknownLaw  = errors.New("unknown law")
	ErrLawDisabled = errors.New("law disabled by configuration")
)

// Engine manages the simplification process.
type Engine struct {
	cfg         normalform.Config
	normalizer  *normalform.Normalizer
	cache       *Cache
	logger      *zap.Logger
	metrics     *normalform.Metrics
	render      expr.RenderSettings
	verify      bool
	ignoredLaws map[string]bool
}

type EngineOption func(*Engine)

func WithCache(c *Cache) EngineOption {
	return func(e *Engine) {
		e.cache = c
	}
}

func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMetrics(m *normalform.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithRenderSettings(s expr.RenderSettings) EngineOption {
	return func(e *Engine) {
		e.render = s
	}
}

// WithVerification makes Run check every result against its input with the
// SAT solver.
func WithVerification(on bool) EngineOption {
	return func(e *Engine) {
		e.verify = on
	}
}

// NewEngine creates a new engine. enabled switches single laws on or off
// for Apply; unknown names are skipped.
func NewEngine(cfg normalform.Config, enabled map[string]bool, opts ...EngineOption) (*Engine, error) {
	engine := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(engine)
	}

	engine.normalizer = normalform.New(cfg,
		normalform.WithLogger(engine.logger),
		normalform.WithMetrics(engine.metrics),
	)
	engine.cfg = engine.normalizer.Config()
	engine.applyLaws(enabled)

	return engine, nil
}

func (e *Engine) applyLaws(enabled map[string]bool) {
	for name, on := range enabled {
		if _, ok := laws.Lookup(name); !ok {
			e.logger.Warn("Unknown law in configuration", zap.String("law", name))
			continue
		}
		if !on {
			e.IgnoreLaw(name)
		}
	}
}

func (e *Engine) IgnoreLaw(name string) {
	if e.ignoredLaws == nil {
		e.ignoredLaws = make(map[string]bool)
	}
	e.ignoredLaws[name] = true
}

// Config returns the effective normalizer configuration.
func (e *Engine) Config() normalform.Config {
	return e.cfg
}

// Run parses input and normalizes it to form. variables extends the
// variable set of the expanded form.
func (e *Engine) Run(input string, form normalform.Stage, variables []string) (*tt.Report, error) {
	key := NewCacheKey(input, string(form), variables, e.settingsKey())
	if e.cache != nil {
		if report, ok := e.cache.Get(key); ok {
			e.logger.Debug("Cache hit", zap.String("input", input), zap.String("form", string(form)))
			return &report, nil
		}
	}

	tree, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	original := expr.DeepCopy(tree)

	vars := mapset.NewThreadUnsafeSet[string](variables...)
	res, err := e.normalizer.Run(form, tree, true, vars)
	if err != nil {
		return nil, fmt.Errorf("%s of %q: %w", form, input, err)
	}

	report := e.report(input, string(form), res.Node, res.History)
	if form == normalform.StageExpandedDNF {
		all := expr.Variables(original)
		for _, name := range variables {
			all.Add(name)
		}
		report.Variables = expr.Sorted(all)
	}

	if e.verify {
		check, err := equiv.Check(original, res.Node)
		if err != nil {
			return nil, fmt.Errorf("verifying %q: %w", input, err)
		}
		report.Verified = check.Result.String()
		if check.Result != equiv.Equivalent {
			e.logger.Error("Result is not equivalent to its input",
				zap.String("input", input),
				zap.String("result", report.Result),
				zap.Any("counterexample", check.Counterexample),
			)
		}
	}

	if e.cache != nil {
		e.cache.Set(key, *report)
	}
	return report, nil
}

// Apply runs the single law registered under name on input.
func (e *Engine) Apply(name, input string) (*tt.Report, error) {
	if e.ignoredLaws[name] {
		return nil, fmt.Errorf("%w: %s", ErrLawDisabled, name)
	}
	fn, ok := laws.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLaw, name)
	}

	tree, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	tree = expr.BinaryToNary(tree)
	h := history.New(tree, history.WithStepLimit(e.cfg.StepLimit))
	out := fn(tree, e.cfg.Operators, h)
	h.Commit(out)
	if err := h.Err(); err != nil {
		return nil, err
	}
	return e.report(input, name, out, h), nil
}

// Evaluate evaluates input under assignment. Every variable must be bound.
func (e *Engine) Evaluate(input string, assignment expr.Assignment) (bool, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return false, err
	}
	return expr.EvaluateStrict(tree, assignment)
}

// Verify decides whether a and b are equivalent.
func (e *Engine) Verify(a, b string) (equiv.Report, error) {
	left, err := parser.Parse(a)
	if err != nil {
		return equiv.Report{}, err
	}
	right, err := parser.Parse(b)
	if err != nil {
		return equiv.Report{}, err
	}
	return equiv.Check(left, right)
}

// Table builds the truth table of input over its variables and extra.
func (e *Engine) Table(input string, extra []string) (*truthtable.Table, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return truthtable.Build(tree, extra)
}

// Flush persists the cache, if any.
func (e *Engine) Flush() error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Flush()
}

func (e *Engine) report(input, form string, result expr.Node, h *history.History) *tt.Report {
	report := &tt.Report{
		Input:     input,
		Form:      form,
		Result:    result.String(),
		Canonical: expr.Canonical(result),
	}
	for _, v := range h.Versions() {
		step := tt.Step{Expression: v.Node.String(), Law: string(v.Law)}
		if rendered := v.Node.Format(0, false, false, e.render); rendered != step.Expression {
			step.Rendered = rendered
		}
		report.Steps = append(report.Steps, step)
	}
	return report
}

func (e *Engine) settingsKey() string {
	s := e.render
	return fmt.Sprintf("%+v|latex=%t,dark=%t,omit=%t,parens=%t,highlight=%t|verify=%t",
		e.cfg, s.LaTeX, s.DarkMode, s.OmitAndOperator, s.ForceParentheses, s.Highlight != nil, e.verify)
}
