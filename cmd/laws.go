package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/formatter"
	"github.com/gnolang/boolnorm/internal/laws"
	"github.com/gnolang/boolnorm/simplify"
)

var lawsCmd = &cobra.Command{
	Use:   "laws",
	Short: "List the laws that apply can run",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range laws.Names() {
			state := "enabled"
			if on, ok := config.Laws[name]; ok && !on {
				state = "disabled"
			}
			fmt.Fprintf(out, "%-20s %s\n", name, state)
		}
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <law> [expressions...]",
	Short: "Apply a single law",
	Long: `Applies one law, as listed by "boolnorm laws", to each expression.
Example) boolnorm apply de-morgan '!(A*B)'`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(config)
		if err != nil {
			logger.Error("Failed to initialize engine", zap.Error(err))
			return err
		}

		reports, err := simplify.ProcessExpressions(cmd.Context(), logger, engine, args[1:],
			simplify.ApplyLaw(args[0]), simplify.Options{Workers: 1, Timeout: timeout})
		if perr := printReports(cmd.OutOrStdout(), reports, jsonOutput, outPath, formatter.Options{Diff: showDiff, Rendered: true}); perr != nil {
			return perr
		}
		return err
	},
}

func init() {
	applyCmd.Flags().BoolVar(&showDiff, "diff", false, "Show the change made by each step")
	applyCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	applyCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}
