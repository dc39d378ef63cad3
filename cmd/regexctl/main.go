// Command regexctl runs the bot outside Lambda and manages the word table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jqs7/regex/pkg/app"
	"github.com/jqs7/regex/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	memory bool
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:           "regexctl",
	Short:         "Manage the regex moderation bot",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")
	serveCmd.Flags().BoolVar(&memory, "memory", false, "keep all state in memory and disable the queues")
	exportCmd.Flags().Bool("yaml", false, "print the patterns as a YAML list")
	rootCmd.AddCommand(serveCmd, hookCmd, importCmd, exportCmd)
}

// setup loads the configuration and builds the app.
func setup(opts app.Options) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(cfg.Debug || debug)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg, logger, opts)
	if err != nil {
		logger.Error("init app", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
