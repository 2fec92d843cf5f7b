// ABOUTME: CLI command for one-shot chat and RAG queries
// ABOUTME: Plain mode keeps history under a conversation key; --rag is stateless
package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	chatKey string
	chatRAG bool
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send a chat message",
		Long: `Send a chat message.

Plain mode keeps conversation history under --key, so repeated calls
with the same key continue one conversation. With --rag the answer is
grounded in retrieved document context and no history is kept.

Examples:
  ragserve chat --key session1 "What did we discuss earlier?"
  ragserve chat --rag "What does the handbook say about refunds?"`,
		Args: cobra.ExactArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatKey, "key", "", "Conversation key (generated when omitted)")
	cmd.Flags().BoolVar(&chatRAG, "rag", false, "Answer from retrieved document context (stateless)")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, cleanup, _, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	prompt := args[0]

	if chatRAG {
		reply, err := engine.ChatRAG(cmd.Context(), prompt)
		if err != nil {
			return fmt.Errorf("RAG query: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	}

	key := chatKey
	if key == "" {
		key = uuid.New().String()
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Conversation key: %s\n", key)
		}
	}

	reply, err := engine.Chat(cmd.Context(), key, prompt)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
