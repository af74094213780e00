package commands

// Root command for Cobra CLI
// Defines the main command structure of the application
// Registers all subcommands (report, watch)

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tierwatch",
	Short: "Tierwatch - holder tier distribution monitor",
	Long: `Tierwatch fetches address-holdings distribution snapshots for a token,
classifies them into named holder tiers, computes period-over-period changes
and renders a distribution table to the console or a Telegram chat.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
}
