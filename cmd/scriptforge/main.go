// Command scriptforge is the entry point for the ScriptForge CLI.
// It wires the driven adapters into the core services and hands them
// to the command layer.
package main

import (
	"fmt"
	"os"
	"time"

	cachefile "github.com/draftlab/scriptforge/internal/adapters/driven/cache/file"
	configfile "github.com/draftlab/scriptforge/internal/adapters/driven/config/file"
	"github.com/draftlab/scriptforge/internal/adapters/driven/embedding/openai"
	"github.com/draftlab/scriptforge/internal/adapters/driven/llm/openrouter"
	"github.com/draftlab/scriptforge/internal/adapters/driven/storage/sqlite"
	"github.com/draftlab/scriptforge/internal/adapters/driven/videometa/ytdlp"
	"github.com/draftlab/scriptforge/internal/adapters/driven/wikipedia"
	"github.com/draftlab/scriptforge/internal/adapters/driving/cli"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/services"
	"github.com/draftlab/scriptforge/internal/logger"
	"github.com/draftlab/scriptforge/internal/postprocessors/chunker"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	cache, err := cachefile.NewArticleCache(cfg.GetString(driven.ConfigKeySourcesDir))
	if err != nil {
		return fmt.Errorf("opening article cache: %w", err)
	}

	delay := cfg.GetFloat(driven.ConfigKeyRequestDelay)
	wiki := wikipedia.NewClient(cache, wikipedia.Config{
		Delay: time.Duration(delay * float64(time.Second)),
	})

	index, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening vector index: %w", err)
	}
	defer index.Close() //nolint:errcheck

	// LLM-backed adapters are optional; without an API key the
	// services degrade to their documented fallbacks. The environment
	// takes precedence over the settings file.
	apiKey := cfg.GetString(driven.ConfigKeyAPIKey)
	if env := os.Getenv("OPENROUTER_API_KEY"); env != "" {
		apiKey = env
	}
	baseURL := cfg.GetString(driven.ConfigKeyBaseURL)

	// Embeddings go to their own gateway. OpenRouter serves chat but
	// not /embeddings, so the embedding URL never inherits base_url;
	// unset it resolves to the adapter's OpenAI default.
	embedKey := cfg.GetString(driven.ConfigKeyEmbeddingAPIKey)
	if env := os.Getenv("OPENAI_API_KEY"); env != "" {
		embedKey = env
	}
	if embedKey == "" {
		embedKey = apiKey
	}
	embedBaseURL := cfg.GetString(driven.ConfigKeyEmbeddingBaseURL)

	var chatLLM, helperLLM driven.LLMService
	var embedder driven.EmbeddingService
	if apiKey != "" {
		chat, err := openrouter.NewLLMService(openrouter.LLMConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   cfg.GetString(driven.ConfigKeyChatModel),
		})
		if err != nil {
			return fmt.Errorf("configuring chat model: %w", err)
		}
		chatLLM = chat

		helper, err := openrouter.NewLLMService(openrouter.LLMConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   cfg.GetString(driven.ConfigKeyHelperModel),
		})
		if err != nil {
			return fmt.Errorf("configuring helper model: %w", err)
		}
		helperLLM = helper
	} else {
		logger.Debug("No API key configured; LLM features disabled")
	}

	if embedKey != "" {
		emb, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  embedKey,
			BaseURL: embedBaseURL,
			Model:   cfg.GetString(driven.ConfigKeyEmbeddingModel),
		})
		if err != nil {
			return fmt.Errorf("configuring embeddings: %w", err)
		}
		embedder = emb
	}

	extractor := ytdlp.NewExtractor("")

	planner := services.NewPlannerService(helperLLM, prompts)
	research := services.NewResearchService(planner, wiki, cache)
	knowledge := services.NewKnowledgeService(cache, chunker.New(), embedder, index)
	chat := services.NewChatAssistant(chatLLM, knowledge, prompts)
	market := services.NewMarketResearcher(extractor, chatLLM)

	script, err := services.NewScriptGenerator(
		research,
		knowledge,
		chat,
		helperLLM,
		prompts,
		cfg.GetString(driven.ConfigKeyScriptsDir),
	)
	if err != nil {
		return fmt.Errorf("configuring script generator: %w", err)
	}

	cli.SetVersion(version)
	cli.SetPlannerService(planner)
	cli.SetResearchService(research)
	cli.SetKnowledgeService(knowledge)
	cli.SetChatService(chat)
	cli.SetScriptService(script)
	cli.SetMarketService(market)
	cli.SetEncyclopedia(wiki)
	cli.SetArticleCache(cache)
	cli.SetConfigStore(cfg)

	return cli.Execute()
}
