package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/formatter"
	"github.com/gnolang/boolnorm/internal"
	"github.com/gnolang/boolnorm/internal/normalform"
	"github.com/gnolang/boolnorm/simplify"
)

var (
	batchForm   string
	workers     int
	metricsPath string
	showBar     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <file|->",
	Short: "Normalize every expression of a file, one per line",
	Long: `Reads one expression per line (blank lines and # comments are skipped) and
normalizes them concurrently.
Example) boolnorm batch --form expanded-dnf --metrics boolnorm.prom exprs.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(cmd, args[0])
		if err != nil {
			return err
		}

		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if batchForm != "" {
			config.Form = batchForm
		}
		form, err := config.Stage()
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		engine, err := newEngine(config, internal.WithMetrics(normalform.NewMetrics(registry)))
		if err != nil {
			logger.Error("Failed to initialize engine", zap.Error(err))
			return err
		}

		opts := simplify.Options{Workers: workers, Timeout: timeout}
		if showBar {
			opts.Progress = cmd.ErrOrStderr()
		}
		reports, err := simplify.ProcessExpressions(cmd.Context(), logger, engine, inputs,
			simplify.Normalize(form, config.Variables), opts)
		if ferr := engine.Flush(); ferr != nil {
			logger.Warn("Failed to save cache", zap.Error(ferr))
		}

		if metricsPath != "" {
			if merr := prometheus.WriteToTextfile(metricsPath, registry); merr != nil {
				logger.Error("Error writing metrics", zap.String("path", metricsPath), zap.Error(merr))
				return merr
			}
		}

		if perr := printReports(cmd.OutOrStdout(), reports, jsonOutput, outPath, formatter.Options{Diff: showDiff, Rendered: true}); perr != nil {
			return perr
		}
		if err != nil {
			hint(cmd.ErrOrStderr(), err)
		}
		return err
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchForm, "form", "", "Normal form (nnf, dnf, expanded-dnf); defaults to the configured form")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Expressions processed at once (0 = one per CPU)")
	batchCmd.Flags().StringVar(&metricsPath, "metrics", "", "Write Prometheus metrics to this textfile")
	batchCmd.Flags().BoolVar(&showBar, "progress", true, "Show a progress bar on stderr")
	batchCmd.Flags().StringSliceVar(&variables, "vars", nil, "Extra variables of the expanded form (comma-separated)")
	batchCmd.Flags().BoolVar(&verifyResult, "verify", false, "Check every result with the SAT solver")
	batchCmd.Flags().BoolVar(&showDiff, "diff", false, "Show the change made by each step")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	batchCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func readInputs(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return simplify.ReadExpressions(r)
}
