// Package cli implements the scriptforge command-line interface. Each
// command lives in its own file and talks to the core through driving
// ports injected from the composition root.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	plannerService   driving.TermPlanner
	researchService  driving.ResearchOrchestrator
	knowledgeService driving.KnowledgeService
	chatService      driving.ChatService
	scriptService    driving.ScriptService
	marketService    driving.MarketService
	encyclopedia     driven.Encyclopedia
	articleCache     driven.ArticleCache
	configStore      driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "scriptforge",
	Short: "Research topics and draft video scripts",
	Long: `ScriptForge researches topics against the public encyclopedia and a
local vector-indexed knowledge base, then drafts marketing video
scripts with a hosted LLM.

Typical workflow:
  scriptforge research "Brake pads" --key-points "- how they wear"
  scriptforge generate "Brake pads" --brand "AI Mechanic"
  scriptforge ask "How often should brake pads be replaced?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetPlannerService injects the term planner.
func SetPlannerService(s driving.TermPlanner) { plannerService = s }

// SetResearchService injects the research orchestrator.
func SetResearchService(s driving.ResearchOrchestrator) { researchService = s }

// SetKnowledgeService injects the knowledge service.
func SetKnowledgeService(s driving.KnowledgeService) { knowledgeService = s }

// SetChatService injects the chat service.
func SetChatService(s driving.ChatService) { chatService = s }

// SetScriptService injects the script generator.
func SetScriptService(s driving.ScriptService) { scriptService = s }

// SetMarketService injects the market researcher.
func SetMarketService(s driving.MarketService) { marketService = s }

// SetEncyclopedia injects the encyclopedia client.
func SetEncyclopedia(e driven.Encyclopedia) { encyclopedia = e }

// SetArticleCache injects the research article cache.
func SetArticleCache(c driven.ArticleCache) { articleCache = c }

// SetConfigStore injects the persistent configuration store.
func SetConfigStore(c driven.ConfigStore) { configStore = c }

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
