package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnolang/boolnorm/internal/expr"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression> [VAR=0|1 ...]",
	Short: "Evaluate an expression under an assignment",
	Long: `Evaluates the expression with every variable bound by the arguments.
Example) boolnorm eval "A*!B" A=1 B=0`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignment, err := parseAssignment(args[1:])
		if err != nil {
			return err
		}
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(config)
		if err != nil {
			return err
		}
		value, err := engine.Evaluate(args[0], assignment)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), bit(value))
		return nil
	},
}

func parseAssignment(args []string) (expr.Assignment, error) {
	assignment := make(expr.Assignment, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want VAR=0 or VAR=1", arg)
		}
		switch strings.ToLower(value) {
		case "1", "true", "t":
			assignment[name] = true
		case "0", "false", "f":
			assignment[name] = false
		default:
			return nil, fmt.Errorf("invalid value %q for %s", value, name)
		}
	}
	return assignment, nil
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
