package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/simplify"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool
	noColor bool

	logger *zap.Logger
	env    = viper.New()
)

var rootCmd = &cobra.Command{
	Use:              "boolnorm [expressions...]",
	Short:            "boolnorm - simplify boolean expressions into normal forms",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: boolnorm [expr1 expr2 ...] => normalizes to the configured form
		return runNormalize(cmd, "", args)
	},
}

func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", simplify.DefaultConfigFile, "Configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout per expression")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(nnfCmd)
	rootCmd.AddCommand(dnfCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(lawsCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup layers BOOLNORM_* environment variables under the flags and builds
// the logger.
func setup(cmd *cobra.Command) error {
	env.SetEnvPrefix("BOOLNORM")
	env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	env.AutomaticEnv()
	if err := env.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfgFile = env.GetString("config")
	timeout = env.GetDuration("timeout")
	verbose = env.GetBool("verbose")
	noColor = env.GetBool("no-color")

	fd := os.Stdout.Fd()
	if noColor || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		color.NoColor = true
	}

	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	return err
}
