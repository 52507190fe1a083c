// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"accountanta/finassist/internal/config"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "finassist",
		Short: "An AI financial assistant backed by deterministic analytics tools.",
		Long: `finassist answers questions about a user's spending, budgets, debts, and
savings goals. A generative language model drives the conversation and calls
deterministic analytics tools against the user's financial records.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finassist!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
			return nil
		},
	}
)
