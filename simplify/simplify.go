// Package simplify loads a boolnorm configuration, builds the engine it
// describes and runs it over many expressions at once.
package simplify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/boolnorm/internal"
	"github.com/gnolang/boolnorm/internal/normalform"
	tt "github.com/gnolang/boolnorm/internal/types"
)

type SimplifyEngine interface {
	Run(input string, form normalform.Stage, variables []string) (*tt.Report, error)
	Apply(law, input string) (*tt.Report, error)
	IgnoreLaw(name string)
}

// New builds an engine from the configuration file at configurationPath.
func New(configurationPath string, opts ...internal.EngineOption) (*internal.Engine, Config, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, config, err
	}
	engine, err := NewFromConfig(config, configurationPath, opts...)
	return engine, config, err
}

// NewFromConfig builds an engine from config. configurationPath, when set,
// invalidates the result cache whenever the file changes. opts are applied
// after the options derived from config.
func NewFromConfig(config Config, configurationPath string, opts ...internal.EngineOption) (*internal.Engine, error) {
	all := []internal.EngineOption{
		internal.WithRenderSettings(config.Render.Settings()),
		internal.WithVerification(config.Verify),
	}
	if config.Cache != "" {
		cache, err := internal.NewCache(config.Cache)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(configurationPath); configurationPath != "" && err == nil {
			if err := cache.SetDependencies(configurationPath); err != nil {
				return nil, err
			}
		}
		all = append(all, internal.WithCache(cache))
	}
	all = append(all, opts...)

	return internal.NewEngine(config.Config, config.Laws, all...)
}

// Processor turns one expression into a report.
type Processor func(SimplifyEngine, string) (*tt.Report, error)

// Normalize returns a processor that normalizes to form.
func Normalize(form normalform.Stage, variables []string) Processor {
	return func(engine SimplifyEngine, input string) (*tt.Report, error) {
		return engine.Run(input, form, variables)
	}
}

// ApplyLaw returns a processor that applies a single law.
func ApplyLaw(law string) Processor {
	return func(engine SimplifyEngine, input string) (*tt.Report, error) {
		return engine.Apply(law, input)
	}
}

// Options tune ProcessExpressions.
type Options struct {
	// Workers bounds the number of expressions processed at once. Zero
	// means one per CPU.
	Workers int
	// Timeout bounds each expression. A timed out expression is reported as
	// failed while its computation finishes in the background.
	Timeout time.Duration
	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer
}

var ErrTimeout = errors.New("expression timed out")

// ProcessExpressions runs processor over inputs concurrently. The reports
// keep the order of inputs; a failed expression gets a report with Error set
// and its error is joined into the returned error. Cancelling ctx stops
// scheduling new expressions and returns ctx.Err().
func ProcessExpressions(
	ctx context.Context,
	logger *zap.Logger,
	engine SimplifyEngine,
	inputs []string,
	processor Processor,
	opts Options,
) ([]tt.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bar := newProgressBar(len(inputs), opts.Progress)
	reports := make([]tt.Report, len(inputs))
	failures := make([]error, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	var cancelled error
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		g.Go(func() error {
			defer func() { _ = bar.Add(1) }()

			report, err := processWithTimeout(ctx, engine, input, processor, opts.Timeout)
			if err != nil {
				logger.Error("Error processing expression", zap.Int("index", i), zap.String("input", input), zap.Error(err))
				reports[i] = tt.Report{Input: input, Error: err.Error()}
				failures[i] = fmt.Errorf("expression %d: %w", i+1, err)
				return nil
			}
			reports[i] = *report
			return nil
		})
	}
	_ = g.Wait()
	_ = bar.Finish()

	if cancelled != nil {
		return reports, cancelled
	}
	return reports, errors.Join(failures...)
}

func processWithTimeout(ctx context.Context, engine SimplifyEngine, input string, processor Processor, timeout time.Duration) (*tt.Report, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		report *tt.Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := processor(engine, input)
		done <- result{report, err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return nil, ctx.Err()
	case r := <-done:
		return r.report, r.err
	}
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.NewOptions(total, progressbar.OptionSetVisibility(false))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("simplifying"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// ReadExpressions reads one expression per line. Blank lines and lines
// starting with # are skipped.
func ReadExpressions(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
