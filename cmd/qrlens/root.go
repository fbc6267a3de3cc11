package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "qrlens <image-path> <output-dir>",
	Short: "Decode a QR symbol from an image",
	Args:  cobra.ExactArgs(2),
	RunE:  runDecode,
}

func init() {
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log each pipeline stage to stderr")
}

// Execute runs the root command, printing any error to stderr and
// exiting non-zero on failure (spec §6).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
