package mcp

import (
	"context"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchKnowledgeInput is the input schema for the search_knowledge tool.
type SearchKnowledgeInput struct {
	Query        string `json:"query" jsonschema:"the search query to run against the research knowledge base"`
	TopicContext string `json:"topic_context,omitempty" jsonschema:"optional topic to focus the search"`
	MaxResults   int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchKnowledgeOutput is the output schema for the search_knowledge tool.
type SearchKnowledgeOutput struct {
	Results []KnowledgeHitOutput `json:"results"`
	Count   int                  `json:"count"`
}

// KnowledgeHitOutput represents a single retrieval result.
type KnowledgeHitOutput struct {
	ChunkID  string  `json:"chunk_id"`
	Source   string  `json:"source"`
	Content  string  `json:"content"`
	Distance float64 `json:"distance"`
}

// QuickAnswerInput is the input schema for the quick_answer tool.
type QuickAnswerInput struct {
	Question     string `json:"question" jsonschema:"the question to answer from cached research"`
	TopicContext string `json:"topic_context,omitempty" jsonschema:"optional topic to focus the retrieval"`
	MaxResults   int    `json:"max_results,omitempty" jsonschema:"maximum number of sources to draw from (default 3)"`
}

// QuickAnswerOutput is the output schema for the quick_answer tool.
type QuickAnswerOutput struct {
	Answer string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the locally cached research knowledge base",
	}, s.handleSearchKnowledge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "quick_answer",
		Description: "Answer a question from cached research without calling an LLM",
	}, s.handleQuickAnswer)
}

// handleSearchKnowledge handles the search_knowledge tool invocation.
func (s *Server) handleSearchKnowledge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchKnowledgeInput,
) (*mcp.CallToolResult, SearchKnowledgeOutput, error) {
	k := input.MaxResults
	if k <= 0 {
		k = 5
	}

	hits, err := s.ports.Knowledge.Search(ctx, input.Query, input.TopicContext, k)
	if err != nil {
		return nil, SearchKnowledgeOutput{}, err
	}

	output := SearchKnowledgeOutput{
		Results: make([]KnowledgeHitOutput, len(hits)),
		Count:   len(hits),
	}

	for i := range hits {
		output.Results[i] = KnowledgeHitOutput{
			ChunkID:  hits[i].ChunkID,
			Source:   filepath.Base(hits[i].Source),
			Content:  hits[i].Content,
			Distance: hits[i].Distance,
		}
	}

	return nil, output, nil
}

// handleQuickAnswer handles the quick_answer tool invocation.
func (s *Server) handleQuickAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuickAnswerInput,
) (*mcp.CallToolResult, QuickAnswerOutput, error) {
	k := input.MaxResults
	if k <= 0 {
		k = 3
	}

	answer, err := s.ports.Knowledge.QuickAnswer(ctx, input.Question, input.TopicContext, k)
	if err != nil {
		return nil, QuickAnswerOutput{}, err
	}

	return nil, QuickAnswerOutput{Answer: answer}, nil
}
