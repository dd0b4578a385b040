package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnolang/boolnorm/formatter"
)

var tableCmd = &cobra.Command{
	Use:   "table <expression>",
	Short: "Print the truth table of an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(config)
		if err != nil {
			return err
		}
		table, err := engine.Table(args[0], config.Variables)
		if err != nil {
			return err
		}

		if jsonOutput {
			d, err := json.Marshal(table)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(d))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.GenerateTable(args[0], table))
		return nil
	},
}

func init() {
	tableCmd.Flags().StringSliceVar(&variables, "vars", nil, "Extra variables (comma-separated)")
	tableCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the table in JSON format")
}
