package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the API key, model names and directories.

Use subcommands to change specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the LLM API key",
	Long:  `Prompts for the API key without echoing it to the terminal.`,
	RunE:  runSettingsKey,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Available keys:
  chat_model             - model used for conversation and drafting
  helper_model           - model used for planning and summaries
  embedding_model        - model used for the vector index
  base_url               - LLM gateway base URL
  embedding_base_url     - embedding gateway base URL (defaults to OpenAI)
  embedding_api_key      - embedding gateway key (defaults to api_key)
  request_delay_seconds  - delay between encyclopedia requests
  sources_dir            - research cache directory
  scripts_dir            - generated scripts directory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsKeyCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	if key := configStore.GetString(driven.ConfigKeyAPIKey); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Chat model: %s\n", configStore.GetString(driven.ConfigKeyChatModel))
	cmd.Printf("  Helper model: %s\n", configStore.GetString(driven.ConfigKeyHelperModel))
	cmd.Printf("  Embedding model: %s\n", configStore.GetString(driven.ConfigKeyEmbeddingModel))
	if baseURL := configStore.GetString(driven.ConfigKeyBaseURL); baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if embedURL := configStore.GetString(driven.ConfigKeyEmbeddingBaseURL); embedURL != "" {
		cmd.Printf("  Embedding base URL: %s\n", embedURL)
	}
	if embedKey := configStore.GetString(driven.ConfigKeyEmbeddingAPIKey); embedKey != "" {
		cmd.Printf("  Embedding API Key: %s\n", maskAPIKey(embedKey))
	}
	cmd.Println()

	cmd.Println("[Research]")
	cmd.Printf("  Request delay: %.1fs\n", configStore.GetFloat(driven.ConfigKeyRequestDelay))
	cmd.Printf("  Sources dir: %s\n", configStore.GetString(driven.ConfigKeySourcesDir))
	cmd.Printf("  Scripts dir: %s\n", configStore.GetString(driven.ConfigKeyScriptsDir))
	cmd.Println()

	if configStore.GetString(driven.ConfigKeyAPIKey) == "" {
		cmd.Println("Warning: no API key configured. LLM features will be unavailable.")
		cmd.Println("Run 'scriptforge settings set-key' to set one.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsKey(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("Enter API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	configStore.Set(driven.ConfigKeyAPIKey, key)
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("API key saved: %s\n", maskAPIKey(key))
	return nil
}

// settableKeys maps user-facing keys to a parser for the stored value.
var settableKeys = map[string]func(string) (any, error){
	driven.ConfigKeyChatModel:        func(v string) (any, error) { return v, nil },
	driven.ConfigKeyHelperModel:      func(v string) (any, error) { return v, nil },
	driven.ConfigKeyEmbeddingModel:   func(v string) (any, error) { return v, nil },
	driven.ConfigKeyBaseURL:          func(v string) (any, error) { return v, nil },
	driven.ConfigKeyEmbeddingBaseURL: func(v string) (any, error) { return v, nil },
	driven.ConfigKeyEmbeddingAPIKey:  func(v string) (any, error) { return v, nil },
	driven.ConfigKeySourcesDir:       func(v string) (any, error) { return v, nil },
	driven.ConfigKeyScriptsDir:       func(v string) (any, error) { return v, nil },
	driven.ConfigKeyRequestDelay: func(v string) (any, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("invalid delay %q", v)
		}
		return f, nil
	},
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]

	parse, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	parsed, err := parse(value)
	if err != nil {
		return err
	}

	configStore.Set(key, parsed)
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Set %s = %v\n", key, parsed)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
