package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, with
// fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when
// first accessed, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts. These are used when
// user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptChatSystem: `You are an intelligent AI assistant with access to a local knowledge database.

IMPORTANT: You have access to a search_knowledge tool that can search through local documents. Use this tool frequently to provide accurate, context-aware responses. When answering questions, ALWAYS search for relevant information first before responding.

The search tool is extremely powerful - use it liberally to:
- Find relevant information for any topic
- Get context before answering questions
- Verify facts and details
- Provide comprehensive responses based on available knowledge

Be thorough in your searches and always provide detailed, helpful responses based on the information you find.`,

	driven.PromptSearchTerms: `Generate 5-8 relevant search terms for the topic: "%s"

Return only a JSON array of strings. Include the original topic and related terms, synonyms, and subtopics.

Example for "Artificial Intelligence":
["artificial intelligence", "machine learning", "neural networks", "deep learning", "AI algorithms", "natural language processing"]`,

	driven.PromptExtractKeywords: `Extract 8-12 important keywords and key phrases from this text that would make good research topics. Focus on:
- Main concepts and subjects
- Technical terms
- Important entities (people, places, organizations)
- Key themes and topics

Text: "%s"

Return only a JSON array of strings. Keep phrases concise (1-4 words each).

Example: ["quantum computing", "artificial intelligence", "machine learning", "neural networks"]`,

	driven.PromptBroaderTopics: `Extract %[1]d broader subject topics from this specific topic that would likely have encyclopedia articles: "%[2]s"

For example:
- "installing linux mint" → ["linux mint", "linux", "operating systems"]
- "AI and skill atrophy in humans" → ["artificial intelligence", "skill atrophy", "AI and human interactions"]

Return only a JSON array of strings. Focus on:
- Main subjects that are encyclopedia-worthy
- Broader categories the topic falls under
- Key concepts that would have dedicated articles

Topic: "%[2]s"

Return JSON array:`,

	driven.PromptSummaryKeyFacts: `Extract 3-5 key facts about %[1]s from this content. Return as bullet points:

%[2]s`,

	driven.PromptSummaryContext: `Write 2-3 sentences explaining the background context of %[1]s based on this content:

%[2]s`,

	driven.PromptSummaryAngles: `List 3-4 different approaches or perspectives related to %[1]s from this content. Return as bullet points:

%[2]s`,

	driven.PromptRelatedTopics: `List 5-6 related topics that are relevant to %s. Include subtopics, related fields, and adjacent areas of interest. Return as bullet points with just the topic names (no descriptions):

Example for 'Artificial Intelligence':
- Machine Learning
- Neural Networks
- Natural Language Processing
- Computer Vision
- Robotics
- Data Science

Now generate related topics for: %s`,

	driven.PromptSummaryGeneric: `Summarize information about %[1]s from this content in 2-3 sentences:

%[2]s`,

	driven.PromptScriptDraft: `You are a script writer for %[1]s which focuses on %[2]s.

Your job is to draft a video script following these specifications:

**Topic:** %[3]s
**Key Points to Cover:**
%[4]s
**Tone:** %[5]s
**Target Runtime:** %[6]d minutes

**IMPORTANT - Research Process:**
Before writing each section, actively search the knowledge base for relevant information. Use the search_knowledge tool to find:
- Facts, statistics, and data points
- Background context and explanations
- Different perspectives or angles
- Supporting evidence for claims

Search multiple times with different queries as you work through each key point. Always cite your sources when you use information from the knowledge base.

**Writing Style Guidelines:**
- Use contractions and casual language
- Include transition phrases like "here's the thing," "so," "what's interesting is"
- Ask rhetorical questions to engage viewers
- Be helpful but not overly formal
- Sound natural and conversational
- Match the specified tone: %[5]s

**Research Context Available:**
Recent research was conducted on: %[7]s

Write a complete script that covers all key points with proper research backing. Structure it for a %[6]d-minute video with natural pacing and smooth transitions between topics.

Format the output as a markdown document with:
- Clear section headers
- Natural speaking flow
- Source citations when using researched information
- Estimated timing for each section`,
}

// NewPromptStore creates a file-based prompt store.
// If promptDir is empty, defaults to ~/.scriptforge/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".scriptforge", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Falls back to the embedded default if the file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check to avoid overwriting concurrent loads.
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt file %q is empty", path)
	}
	return prompt, nil
}
