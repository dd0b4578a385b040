package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnolang/boolnorm/internal/equiv"
	"github.com/gnolang/boolnorm/internal/expr"
)

var errNotEquivalent = errors.New("expressions are not equivalent")

var verifyCmd = &cobra.Command{
	Use:   "verify <expression> <expression>",
	Short: "Decide whether two expressions are equivalent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(config)
		if err != nil {
			return err
		}
		report, err := engine.Verify(args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, report.Result)
		if report.Result == equiv.NotEquivalent {
			fmt.Fprintf(out, "counterexample: %s\n", formatAssignment(report.Counterexample))
			return errNotEquivalent
		}
		return nil
	},
}

func formatAssignment(a expr.Assignment) string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)
	parts := make([]string, 0, len(a))
	for _, name := range names {
		parts = append(parts, name+"="+bit(a[name]))
	}
	return strings.Join(parts, " ")
}
