package main

import (
	"os"

	"github.com/spf13/cobra"

	"warden/internal/interfaces/cli/bot"
	"warden/internal/interfaces/cli/migrate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "warden",
		Short: "Warden - a community server assistant",
		Long:  `Warden runs a support ticket workflow, a moderation ledger, and utility commands for a Discord server.`,
	}

	rootCmd.AddCommand(
		bot.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
