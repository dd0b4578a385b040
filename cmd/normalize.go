package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/formatter"
	"github.com/gnolang/boolnorm/internal"
	"github.com/gnolang/boolnorm/internal/normalform"
	tt "github.com/gnolang/boolnorm/internal/types"
	"github.com/gnolang/boolnorm/simplify"
)

// flags shared by the normalizing commands
var (
	variables        []string
	latex            bool
	darkMode         bool
	omitAndOperator  bool
	forceParentheses bool
	verifyResult     bool
	showDiff         bool
	jsonOutput       bool
	outPath          string
)

var (
	nnfCmd    = newNormalizeCmd(normalform.StageNNF, "nnf", "Rewrite expressions into negation normal form")
	dnfCmd    = newNormalizeCmd(normalform.StageDNF, "dnf", "Rewrite expressions into disjunctive normal form")
	expandCmd = newNormalizeCmd(normalform.StageExpandedDNF, "expand", "Rewrite expressions into a disjunction of minterms")
)

func newNormalizeCmd(form normalform.Stage, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [expressions...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, form, args)
		},
	}
	cmd.Flags().StringSliceVar(&variables, "vars", nil, "Extra variables of the expanded form (comma-separated)")
	cmd.Flags().BoolVar(&latex, "latex", false, "Render steps as LaTeX")
	cmd.Flags().BoolVar(&darkMode, "dark", false, "Use the dark LaTeX palette")
	cmd.Flags().BoolVar(&omitAndOperator, "omit-and", false, "Write conjunctions by juxtaposition")
	cmd.Flags().BoolVar(&forceParentheses, "force-parens", false, "Parenthesize every operation")
	cmd.Flags().BoolVar(&verifyResult, "verify", false, "Check every result with the SAT solver")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show the change made by each step")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	return cmd
}

// loadConfig reads the configuration file and applies the flags that were
// set on cmd on top of it.
func loadConfig(cmd *cobra.Command) (simplify.Config, error) {
	config, err := simplify.LoadConfig(cfgFile)
	if err != nil {
		return config, err
	}

	flags := cmd.Flags()
	if flags.Changed("latex") {
		config.Render.LaTeX = latex
	}
	if flags.Changed("dark") {
		config.Render.DarkMode = darkMode
	}
	if flags.Changed("omit-and") {
		config.Render.OmitAndOperator = omitAndOperator
	}
	if flags.Changed("force-parens") {
		config.Render.ForceParentheses = forceParentheses
	}
	if flags.Changed("verify") {
		config.Verify = verifyResult
	}
	if flags.Changed("vars") {
		config.Variables = variables
	}
	return config, nil
}

func newEngine(config simplify.Config, opts ...internal.EngineOption) (*internal.Engine, error) {
	settings := config.Render.Settings()
	if !settings.LaTeX && !jsonOutput {
		settings.Highlight = formatter.Highlight
	}
	opts = append([]internal.EngineOption{
		internal.WithLogger(logger),
		internal.WithRenderSettings(settings),
	}, opts...)
	return simplify.NewFromConfig(config, cfgFile, opts...)
}

func runNormalize(cmd *cobra.Command, form normalform.Stage, inputs []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if form == "" {
		if form, err = config.Stage(); err != nil {
			return err
		}
	}

	engine, err := newEngine(config)
	if err != nil {
		logger.Error("Failed to initialize engine", zap.Error(err))
		return err
	}

	reports, err := simplify.ProcessExpressions(cmd.Context(), logger, engine, inputs,
		simplify.Normalize(form, config.Variables), simplify.Options{Workers: 1, Timeout: timeout})
	if ferr := engine.Flush(); ferr != nil {
		logger.Warn("Failed to save cache", zap.Error(ferr))
	}

	if perr := printReports(cmd.OutOrStdout(), reports, jsonOutput, outPath, formatter.Options{Diff: showDiff, Rendered: true}); perr != nil {
		return perr
	}
	if err != nil {
		hint(cmd.ErrOrStderr(), err)
	}
	return err
}

// hint explains the failures users can act on.
func hint(w io.Writer, err error) {
	switch {
	case errors.Is(err, normalform.ErrHardLimit):
		fmt.Fprintln(w, "hard limit reached: raise hardLimit in the configuration or simplify the expression")
	case errors.Is(err, simplify.ErrTimeout):
		fmt.Fprintln(w, "timed out: raise --timeout or simplify the expression")
	}
}

func printReports(w io.Writer, reports []tt.Report, isJson bool, jsonOutput string, opts formatter.Options) error {
	if !isJson {
		// text output
		fmt.Fprint(w, formatter.GenerateDerivations(reports, opts))
		return nil
	}

	// JSON output
	d, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return err
	}
	if jsonOutput == "" {
		fmt.Fprintln(w, string(d))
		return nil
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return err
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
		return err
	}
	return nil
}
