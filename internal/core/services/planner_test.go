package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSearchTerms(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{
		`["solar energy", "photovoltaics", "Solar Energy", "renewables"]`,
	}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	terms := planner.GenerateSearchTerms(context.Background(), "solar energy")

	// Topic first, case-insensitive duplicate dropped.
	assert.Equal(t, []string{"solar energy", "photovoltaics", "renewables"}, terms)

	require.Len(t, llm.generatePrompts, 1)
	assert.Contains(t, llm.generatePrompts[0], "solar energy")
	assert.Equal(t, 200, llm.generateOpts[0].MaxTokens)
	assert.InDelta(t, 0.7, llm.generateOpts[0].Temperature, 0.001)
}

func TestGenerateSearchTerms_TopicForcedFirst(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{
		`["machine learning", "neural networks", "deep learning"]`,
	}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	terms := planner.GenerateSearchTerms(context.Background(), "deep learning")
	assert.Equal(t, "deep learning", terms[0])
	assert.Equal(t, []string{"deep learning", "machine learning", "neural networks"}, terms)
}

func TestGenerateSearchTerms_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		llm  *mockLLM
	}{
		{"nil LLM", nil},
		{"request error", &mockLLM{generateErr: errors.New("boom")}},
		{"unparseable response", &mockLLM{generateResponses: []string{"here are some terms"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var planner *PlannerService
			if tt.llm == nil {
				planner = NewPlannerService(nil, &mockPromptStore{})
			} else {
				planner = NewPlannerService(tt.llm, &mockPromptStore{})
			}

			terms := planner.GenerateSearchTerms(context.Background(), "obscure topic")
			assert.Equal(t, []string{"obscure topic"}, terms)
		})
	}
}

func TestGenerateSearchTerms_StripsCodeFence(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{
		"```json\n[\"alpha\", \"beta\"]\n```",
	}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	terms := planner.GenerateSearchTerms(context.Background(), "alpha")
	assert.Equal(t, []string{"alpha", "beta"}, terms)
}

func TestExtractKeywords(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{
		`["quantum computing", "Qubits", "qubits", " error correction "]`,
	}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	keywords := planner.ExtractKeywords(context.Background(), "notes about quantum computers")

	assert.Equal(t, []string{"quantum computing", "Qubits", "error correction"}, keywords)
	assert.Equal(t, 150, llm.generateOpts[0].MaxTokens)
	assert.InDelta(t, 0.3, llm.generateOpts[0].Temperature, 0.001)
}

func TestExtractKeywords_EmptyText(t *testing.T) {
	llm := &mockLLM{}
	planner := NewPlannerService(llm, &mockPromptStore{})

	assert.Empty(t, planner.ExtractKeywords(context.Background(), "   \n  "))
	assert.Empty(t, llm.generatePrompts, "no LLM call for empty input")
}

func TestExtractKeywords_TruncatesLongText(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{`["keyword"]`}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	planner.ExtractKeywords(context.Background(), string(long))

	require.Len(t, llm.generatePrompts, 1)
	assert.LessOrEqual(t, len(llm.generatePrompts[0]), keywordTextLimit+len(mockTemplates["extract_keywords"]))
}

func TestExtractBroaderTopics(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{
		`["linux mint", "linux", "operating systems", "computing"]`,
	}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	topics := planner.ExtractBroaderTopics(context.Background(), "installing linux mint", 3)

	assert.Equal(t, []string{"linux mint", "linux", "operating systems"}, topics)
	assert.Contains(t, llm.generatePrompts[0], "3 broader topics")
}

func TestExtractBroaderTopics_DefaultsMax(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{`["a", "b", "c", "d"]`}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	topics := planner.ExtractBroaderTopics(context.Background(), "topic", 0)
	assert.Len(t, topics, 3)
}

func TestExtractBroaderTopics_Failure(t *testing.T) {
	planner := NewPlannerService(&mockLLM{generateErr: errors.New("down")}, &mockPromptStore{})
	assert.Empty(t, planner.ExtractBroaderTopics(context.Background(), "topic", 3))
}

func TestProcessTopicAndKeyPoints(t *testing.T) {
	llm := &mockLLM{generateResponses: []string{
		`["coffee", "espresso", "brewing"]`,
		`["Espresso", "grind size"]`,
	}}
	planner := NewPlannerService(llm, &mockPromptStore{})

	terms, parsed := planner.ProcessTopicAndKeyPoints(context.Background(), "coffee",
		"• Grind size matters\n- Water temperature\n\n3. Extraction time")

	assert.Equal(t, []string{"coffee", "espresso", "brewing", "grind size"}, terms)
	assert.Equal(t, []string{"Grind size matters", "Water temperature", "Extraction time"}, parsed)
}

func TestParseKeyPoints(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "bullet variants",
			input: "• first\n- second\n* third\n→ fourth",
			want:  []string{"first", "second", "third", "fourth"},
		},
		{
			name:  "numbered list",
			input: "1. one\n2 two\n10. ten",
			want:  []string{"one", "two", "ten"},
		},
		{
			name:  "blank lines dropped",
			input: "\n\n- point\n   \n",
			want:  []string{"point"},
		},
		{
			name:  "plain lines kept",
			input: "no marker here",
			want:  []string{"no marker here"},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeyPoints(tt.input))
		})
	}
}

func TestParseKeyPoints_RoundTrip(t *testing.T) {
	// Re-joining parsed statements as a bullet list and parsing again
	// yields the same statements.
	inputs := []string{
		"• Grind size matters\n- Water temperature\n3. Extraction time",
		"plain statement without marker",
		"- single point",
	}

	for _, input := range inputs {
		parsed := ParseKeyPoints(input)
		var joined []string
		for _, point := range parsed {
			joined = append(joined, "- "+point)
		}
		again := ParseKeyPoints(strings.Join(joined, "\n"))
		assert.Equal(t, parsed, again)
	}
}

func TestDedupeTerms(t *testing.T) {
	got := dedupeTerms([]string{"Go", "go", " GO ", "rust", "", "Rust"})
	assert.Equal(t, []string{"Go", "rust"}, got)
}
