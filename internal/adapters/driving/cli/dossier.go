package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dossierPrint bool

var dossierCmd = &cobra.Command{
	Use:   "dossier [topic]",
	Short: "Build a research dossier for a topic",
	Long: `Builds a human-readable markdown dossier for a topic, including
images and related articles, and saves it to the research cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runDossier,
}

func init() {
	dossierCmd.Flags().BoolVar(&dossierPrint, "print", false, "print the dossier to stdout")
	rootCmd.AddCommand(dossierCmd)
}

func runDossier(cmd *cobra.Command, args []string) error {
	topic := args[0]

	if encyclopedia == nil {
		return errors.New("encyclopedia client not configured")
	}

	markdown, err := encyclopedia.BuildDossier(cmd.Context(), topic)
	if err != nil {
		return fmt.Errorf("building dossier: %w", err)
	}

	if dossierPrint {
		cmd.Println(markdown)
		return nil
	}

	cmd.Printf("Dossier saved for %q (%d bytes)\n", topic, len(markdown))
	if articleCache != nil {
		cmd.Printf("Cache directory: %s\n", articleCache.Dir())
	}
	return nil
}
