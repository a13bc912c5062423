// Command fathom runs queries against JSON document collections.
//
// Logging follows the project convention: the base logger is created here
// and handed down; components scope it with their own attributes and no
// global slog configuration exists.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	rootCmd := &cobra.Command{
		Use:     "fathom",
		Short:   "Document filter engine",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logLevel.Set(slog.LevelDebug)
			} else {
				logLevel.Set(slog.LevelInfo)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("data", "", "JSON-lines document file")
	rootCmd.PersistentFlags().String("load", "", "snapshot file to load instead of --data")
	rootCmd.PersistentFlags().StringArray("index", nil, "field path to index (repeatable)")

	rootCmd.AddCommand(newQueryCmd(logger))
	rootCmd.AddCommand(newExplainCmd(logger))
	rootCmd.AddCommand(newSnapshotCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
