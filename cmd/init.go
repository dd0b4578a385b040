package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/internal/laws"
	"github.com/gnolang/boolnorm/simplify"
)

// initCmd: boolnorm init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", cfgFile)
		return nil
	},
}

func initConfigurationFile(configurationPath string) error {
	config := simplify.DefaultConfig()
	for _, name := range laws.Names() {
		config.Laws[name] = true
	}
	return simplify.WriteConfig(configurationPath, config)
}
