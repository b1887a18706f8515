package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// chatHistoryCap bounds how many prior exchanges are replayed per turn.
const chatHistoryCap = 20

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive research conversation",
	Long: `Starts an interactive conversation with the research assistant.
History is carried across turns; the assistant can search the local
knowledge base while answering.

Type "exit" or "quit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	cmd.Println("Research assistant ready. Type \"exit\" to leave.")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)
	var history []domain.ChatExchange

	for {
		cmd.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session cleanly.
			cmd.Println()
			return nil
		}

		message := strings.TrimSpace(line)
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			return nil
		}

		answer, err := chatService.Prompt(cmd.Context(), message, history)
		if err != nil {
			return err
		}

		cmd.Println()
		cmd.Println(answer)
		cmd.Println()

		history = append(history,
			domain.ChatExchange{Role: "user", Content: message},
			domain.ChatExchange{Role: "assistant", Content: answer},
		)
		if len(history) > chatHistoryCap {
			history = history[len(history)-chatHistoryCap:]
		}
	}
}
