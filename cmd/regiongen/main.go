package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "regiongen",
		Short:         "Seeded open-world region generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	logger := func() *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	rootCmd.AddCommand(generateCmd(logger))
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(previewCmd(logger))
	rootCmd.AddCommand(fetchCmd())

	if err := rootCmd.Execute(); err != nil {
		logger().Error("regiongen failed", "error", err)
		os.Exit(1)
	}
}
