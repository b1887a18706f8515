package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

var (
	researchKeyPoints string
	researchJSON      bool
	researchForce     bool
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research a topic into the local cache",
	Long: `Plans search terms for a topic, fetches matching encyclopedia
articles and writes them to the research cache as markdown.

Key points can be supplied as bulleted or numbered text; keywords are
extracted from them and added to the search terms.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().StringVarP(&researchKeyPoints, "key-points", "k", "", "key points the research should cover")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "output the run as JSON")
	researchCmd.Flags().BoolVar(&researchForce, "force", false, "re-fetch articles and overwrite existing cache files")
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic := args[0]

	if researchService == nil {
		return errors.New("research service not configured")
	}

	result, err := researchService.Research(cmd.Context(), topic, researchKeyPoints, researchForce)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if researchJSON {
		return outputResearchJSON(cmd, result)
	}

	return outputResearchTable(cmd, result)
}

func outputResearchJSON(cmd *cobra.Command, result *domain.ResearchResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResearchTable(cmd *cobra.Command, result *domain.ResearchResult) error {
	cmd.Printf("Research: %s\n", result.Topic)
	cmd.Println()

	if len(result.KeyPoints) > 0 {
		cmd.Println("Key points:")
		for _, point := range result.KeyPoints {
			cmd.Printf("  - %s\n", point)
		}
		cmd.Println()
	}

	cmd.Println("Terms:")
	for i := range result.Results {
		res := &result.Results[i]
		switch res.Status {
		case domain.TermFound:
			title := res.Term
			if res.Article != nil {
				title = res.Article.Title
			}
			cmd.Printf("  [ok] %s -> %s\n", res.Term, title)
		case domain.TermCached:
			cmd.Printf("  [cached] %s\n", res.Term)
		case domain.TermFailed:
			cmd.Printf("  [failed] %s: %s\n", res.Term, res.Err)
		}
	}

	if skipped := result.Total - len(result.Results); skipped > 0 {
		cmd.Printf("  (%d terms beyond the per-run cap were skipped)\n", skipped)
	}

	cmd.Println()
	cmd.Printf("Successful: %d/%d\n", result.Successful, result.Total)
	return nil
}
