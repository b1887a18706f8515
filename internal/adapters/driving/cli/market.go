package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draftlab/scriptforge/internal/adapters/driving/tui"
)

var (
	marketMaxVideos int
	marketOut       string
	marketPlain     bool
)

var marketCmd = &cobra.Command{
	Use:   "market [topic]",
	Short: "Analyse the competitive video landscape for a topic",
	Long: `Searches existing videos for the topic and produces a markdown
market report: common themes, title patterns, covered subjects, gaps
and recommended actions.

Analyses degrade to explanatory placeholders when yt-dlp or the LLM
API key is missing; the report is still produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runMarket,
}

func init() {
	marketCmd.Flags().IntVarP(&marketMaxVideos, "max-videos", "n", 8, "maximum number of videos to analyse")
	marketCmd.Flags().StringVarP(&marketOut, "out", "o", "", "write the report to a file instead of stdout")
	marketCmd.Flags().BoolVar(&marketPlain, "plain", false, "print progress lines instead of the spinner UI")
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	topic := args[0]

	if marketService == nil {
		return errors.New("market service not configured")
	}

	pipeline := func(ctx context.Context, report func(string)) (string, error) {
		report(fmt.Sprintf("Analysing the market for %q...", topic))
		return marketService.TopicReport(ctx, topic, marketMaxVideos), nil
	}

	var report string
	var err error
	if marketPlain {
		report, err = pipeline(cmd.Context(), func(status string) { cmd.Println(status) })
	} else {
		report, err = tui.Run(cmd.Context(), "Market research: "+topic, pipeline)
	}
	if err != nil {
		if errors.Is(err, tui.ErrInterrupted) {
			cmd.Println("Aborted.")
			return nil
		}
		return fmt.Errorf("market research failed: %w", err)
	}

	if marketOut != "" {
		if err := os.WriteFile(marketOut, []byte(report), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		cmd.Printf("Report written to %s\n", marketOut)
		return nil
	}

	cmd.Println(report)
	return nil
}
