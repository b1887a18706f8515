package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftlab/scriptforge/internal/adapters/driving/tui"
	"github.com/draftlab/scriptforge/internal/core/domain"
)

var (
	generateBrand     string
	generateFocus     string
	generateKeyPoints []string
	generateTone      string
	generateRuntime   int
	generatePlain     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a video script draft",
	Long: `Researches the topic, rebuilds the knowledge index and drafts a
video script with the LLM. The draft is written to the scripts
directory and a research brief is shown alongside it.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateBrand, "brand", "b", "", "brand or channel the script is for")
	generateCmd.Flags().StringVarP(&generateFocus, "focus", "f", "", "one-line statement of what the brand focuses on")
	generateCmd.Flags().StringArrayVarP(&generateKeyPoints, "key-point", "k", nil, "key point the script must cover (repeatable)")
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", "informative and engaging", "requested voice of the script")
	generateCmd.Flags().IntVarP(&generateRuntime, "runtime", "r", 10, "target video length in minutes")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "print progress lines instead of the spinner UI")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := args[0]

	if scriptService == nil {
		return errors.New("script service not configured")
	}

	req := domain.ScriptRequest{
		Brand:          generateBrand,
		Focus:          generateFocus,
		Topic:          topic,
		KeyPoints:      generateKeyPoints,
		Tone:           generateTone,
		RuntimeMinutes: generateRuntime,
	}

	pipeline := func(ctx context.Context, report func(string)) (string, error) {
		report(fmt.Sprintf("Researching %q and drafting the script...", topic))
		draft, brief, err := scriptService.Generate(ctx, req)
		if err != nil {
			return "", err
		}
		return renderGenerateSummary(draft, brief), nil
	}

	var summary string
	var err error
	if generatePlain {
		summary, err = pipeline(cmd.Context(), func(status string) { cmd.Println(status) })
	} else {
		summary, err = tui.Run(cmd.Context(), "Generating script: "+topic, pipeline)
	}
	if err != nil {
		if errors.Is(err, tui.ErrInterrupted) {
			cmd.Println("Aborted.")
			return nil
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	cmd.Println(summary)
	return nil
}

func renderGenerateSummary(draft *domain.ScriptDraft, brief *domain.ResearchBrief) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Script saved: %s\n", draft.Path)
	fmt.Fprintf(&b, "Research: %d/%d sources\n\n", draft.ResearchSuccessful, draft.ResearchTotal)

	b.WriteString("Key facts:\n")
	for _, fact := range brief.KeyFacts {
		fmt.Fprintf(&b, "  - %s\n", fact)
	}

	if brief.Context != "" {
		fmt.Fprintf(&b, "\nContext:\n  %s\n", brief.Context)
	}

	if len(brief.Angles) > 0 {
		b.WriteString("\nAngles:\n")
		for _, angle := range brief.Angles {
			fmt.Fprintf(&b, "  - %s\n", angle)
		}
	}

	if len(brief.RelatedTopics) > 0 {
		fmt.Fprintf(&b, "\nRelated topics: %s\n", strings.Join(brief.RelatedTopics, ", "))
	}

	if len(brief.Articles) > 0 {
		b.WriteString("\nSources:\n")
		for _, article := range brief.Articles {
			fmt.Fprintf(&b, "  - %s (%s)\n", article.Title, article.URL)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
