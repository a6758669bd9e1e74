// Package cli implements the plotframe command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/paveg/plotframe/internal/config"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "plotframe",
		Short:         "Plot data transformation pipeline",
		Long:          "Applies stats, facets and sampling to plot layers and prints the processed data as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (.json, .yaml or .yml); PLOTFRAME_* environment variables otherwise")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log processing steps at debug level")

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig resolves the effective configuration for cmd and attaches a
// text logger writing to the command's error stream.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return config.Config{}, err
		}
	} else {
		cfg = config.LoadFromEnv()
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.DebugLog = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level := slog.LevelWarn
	if cfg.DebugLog {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return cfg, nil
}
