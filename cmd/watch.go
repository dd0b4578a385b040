package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/formatter"
	"github.com/gnolang/boolnorm/internal"
	"github.com/gnolang/boolnorm/simplify"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Normalize a file of expressions again whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		form, err := config.Stage()
		if err != nil {
			return err
		}
		engine, err := newEngine(config)
		if err != nil {
			logger.Error("Failed to initialize engine", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		process := func(path string) {
			f, err := os.Open(path)
			if err != nil {
				logger.Error("Error reading expressions", zap.String("path", path), zap.Error(err))
				return
			}
			inputs, err := simplify.ReadExpressions(f)
			f.Close()
			if err != nil {
				logger.Error("Error reading expressions", zap.String("path", path), zap.Error(err))
				return
			}
			reports, err := simplify.ProcessExpressions(ctx, logger, engine, inputs,
				simplify.Normalize(form, config.Variables), simplify.Options{Timeout: timeout})
			if err != nil {
				logger.Warn("Some expressions failed", zap.Error(err))
			}
			_ = printReports(out, reports, false, "", formatter.Options{Diff: showDiff, Rendered: true})
		}

		w, err := internal.NewWatcher(args[0], process, logger)
		if err != nil {
			return err
		}
		process(args[0])
		logger.Info("Watching for changes", zap.String("path", args[0]))
		err = w.Run(ctx)
		if ferr := engine.Flush(); ferr != nil {
			logger.Warn("Failed to save cache", zap.Error(ferr))
		}
		return err
	},
}

func init() {
	watchCmd.Flags().BoolVar(&showDiff, "diff", false, "Show the change made by each step")
}
