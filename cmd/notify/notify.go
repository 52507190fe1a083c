// Package notify runs the notification jobs once. Intended to be invoked
// from cron or a scheduler.
package notify

import (
	"fmt"

	"github.com/spf13/cobra"

	"accountanta/finassist/cmd/root"
	"accountanta/finassist/internal/container"
)

// Cmd represents the notify command.
var Cmd = &cobra.Command{
	Use:   "notify",
	Short: "Run the notification jobs once",
	Long: `Run the daily summary, budget alert, and spending reminder jobs for
every user with notifications enabled, then exit.

Example:
  finassist notify`,
	RunE: notifyFunc,
}

func notifyFunc(cmd *cobra.Command, args []string) error {
	if !root.Cfg.Notify.Enabled {
		root.Log.Info("Notifications are disabled in configuration")
		return nil
	}

	c, err := container.NewContainer(cmd.Context(), root.Cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.GetJobs().RunAll(cmd.Context()); err != nil {
		return fmt.Errorf("notification sweep failed: %w", err)
	}
	return nil
}
