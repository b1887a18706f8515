package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	indexSearchTopic string
	indexSearchLimit int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the knowledge index",
	Long: `Rebuilds the vector index from the research cache. The previous
chunk set is dropped first; running it twice is harmless.`,
	RunE: runIndex,
}

var indexLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Rebuild the knowledge index",
	RunE:  runIndex,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show knowledge index status",
	RunE:  runIndexStatus,
}

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexSearch,
}

func init() {
	indexSearchCmd.Flags().StringVarP(&indexSearchTopic, "topic", "t", "", "topic context prepended to the query")
	indexSearchCmd.Flags().IntVarP(&indexSearchLimit, "limit", "n", 5, "maximum number of chunks to return")
	indexCmd.AddCommand(indexLoadCmd)
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexSearchCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	if !knowledgeService.Available() {
		return errors.New("vector backend not available; configure an API key with 'scriptforge settings set-key'")
	}

	if err := knowledgeService.LoadDocuments(cmd.Context()); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	cmd.Println("Knowledge index rebuilt.")
	return nil
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	hits, err := knowledgeService.Search(cmd.Context(), args[0], indexSearchTopic, indexSearchLimit)
	if err != nil {
		return fmt.Errorf("searching index: %w", err)
	}

	if len(hits) == 0 {
		cmd.Println("No matching chunks. Run 'scriptforge index' to rebuild the index.")
		return nil
	}

	for i, hit := range hits {
		cmd.Printf("%d. %s (distance %.3f)\n", i+1, filepath.Base(hit.Source), hit.Distance)
		cmd.Printf("   %s\n", snippet(hit.Content, 200))
	}
	return nil
}

// snippet truncates text to max runes on a single line.
func snippet(text string, maxRunes int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	status := "available"
	if !knowledgeService.Available() {
		status = "unavailable (vector backend not configured)"
	}
	cmd.Printf("Index: %s\n", status)

	if articleCache != nil {
		docs, err := articleCache.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing cache: %w", err)
		}
		cmd.Printf("Cached documents: %d\n", len(docs))
		cmd.Printf("Cache directory: %s\n", articleCache.Dir())
	}

	return nil
}
