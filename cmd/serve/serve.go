// Package serve starts the HTTP API.
package serve

import (
	"github.com/spf13/cobra"

	"accountanta/finassist/cmd/root"
	"accountanta/finassist/internal/container"
	"accountanta/finassist/internal/server"
)

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing chat, conversation history,
notification preferences, and device token registration.

Example:
  finassist serve`,
	RunE: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := container.NewContainer(cmd.Context(), root.Cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(c.GetOrchestrator(), c.GetStore(), c.GetLogger())
	return srv.Run(root.Cfg.Server.Address)
}
