package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askTopic string
	askQuick bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the research assistant a question",
	Long: `Sends a single question to the research assistant. The assistant can
search the local knowledge base while answering.

With --quick the answer is stitched directly from cached research
paragraphs without calling the LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askTopic, "topic", "t", "", "topic context to focus retrieval")
	askCmd.Flags().BoolVarP(&askQuick, "quick", "q", false, "answer from cached research without the LLM")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if askQuick {
		if knowledgeService == nil {
			return errors.New("knowledge service not configured")
		}
		answer, err := knowledgeService.QuickAnswer(cmd.Context(), question, askTopic, 3)
		if err != nil {
			return fmt.Errorf("quick answer failed: %w", err)
		}
		cmd.Println(answer)
		return nil
	}

	if chatService == nil {
		return errors.New("chat service not configured")
	}

	message := question
	if askTopic != "" {
		message = fmt.Sprintf("Regarding %s: %s", askTopic, question)
	}

	answer, err := chatService.Prompt(cmd.Context(), message, nil)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}
