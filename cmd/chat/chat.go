// Package chat sends a single message through the assistant from the
// command line. Useful for trying the loop without running the API.
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"accountanta/finassist/cmd/root"
	"accountanta/finassist/internal/container"
)

var (
	userID         string
	conversationID string
	showResults    bool
)

// Cmd represents the chat command.
var Cmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send one message to the assistant",
	Long: `Send one message through the full orchestration loop and print the
assistant's response. Pass --conversation to continue an earlier conversation.

Example:
  finassist chat --user alice "How much did I spend this month?"`,
	Args: cobra.ExactArgs(1),
	RunE: chatFunc,
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID to chat as")
	Cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "Conversation ID to continue")
	Cmd.Flags().BoolVar(&showResults, "show-tool-results", false, "Print raw tool results as JSON")
	_ = Cmd.MarkFlagRequired("user")
}

func chatFunc(cmd *cobra.Command, args []string) error {
	c, err := container.NewContainer(cmd.Context(), root.Cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	result := c.GetOrchestrator().ProcessMessage(cmd.Context(), userID, args[0], conversationID)

	fmt.Println(result.Response)
	fmt.Printf("\n[conversation %s, %d tokens, tools: %v]\n",
		result.ConversationID, result.TokenCount, result.ToolsUsed)

	if showResults && len(result.ToolResults) > 0 {
		data, err := json.MarshalIndent(result.ToolResults, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	if result.Error != "" {
		root.Log.Warnf("Turn completed with error: %s", result.Error)
	}
	return nil
}
