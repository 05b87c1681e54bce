// Package commands holds the apireader CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Apply adds the apireader commands to rootCmd.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listRulesCmd)
}

func loggerFrom(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
