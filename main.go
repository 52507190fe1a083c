// Package main provides the entry point for the finassist application.
package main

import (
	"os"

	"accountanta/finassist/cmd/chat"
	"accountanta/finassist/cmd/notify"
	"accountanta/finassist/cmd/root"
	"accountanta/finassist/cmd/serve"
)

func main() {
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(chat.Cmd)
	root.Cmd.AddCommand(notify.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
