package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
)

// Ensure MarketResearcher implements the interface.
var _ driving.MarketService = (*MarketResearcher)(nil)

// defaultReportVideos is how many videos a topic report analyses.
const defaultReportVideos = 8

// highCompetitionThreshold is the video count above which the report
// calls the space highly competitive.
const highCompetitionThreshold = 6

const contentAnalysisPrompt = `Analyze these videos and answer: "What do these videos commonly cover vs what unique angles could be explored based on the available research?"

Video Data:
%s

Please provide:
1. Common themes/topics covered across these videos
2. Unique angles or perspectives that could be explored
3. Content gaps or opportunities for differentiation

Be specific and actionable in your analysis.

Lead with a short list of Actionable Items based on your analysis`

const titlePatternPrompt = `Analyze these video titles and identify common patterns. Focus on structural patterns, formatting, and phrasing conventions.

Video Titles:
%s

Please identify and list the most common title patterns you observe. Examples of patterns might be:
- "How to [action]" format
- "[Number] Ways to [achieve something]"
- "[Topic]: [Explanation]" format
- Questions starting with "Why/What/How"
- Clickbait patterns with numbers or superlatives

Return ONLY a simple list of the patterns you identify, one pattern per line, without explanations or extra text.`

const topicAnalysisPrompt = `Analyze these videos and identify the main topics/subjects being covered based on their titles and descriptions.

Video Data:
%s

Please identify the key topics, themes, and subject areas covered across these videos. Focus on:
- Main subject areas (e.g., technology, health, education, etc.)
- Specific subtopics within those areas
- Common themes or angles being discussed

Return ONLY a simple list of the topics you identify, one topic per line, without explanations or extra text.`

// MarketResearcher analyses the competitive video landscape for a
// topic. Every analysis degrades to explanatory placeholder text when
// the extractor or the LLM gateway is unavailable, so a report is
// always produced.
type MarketResearcher struct {
	extractor driven.VideoMetadataExtractor
	llm       driven.LLMService
	now       func() time.Time
}

// NewMarketResearcher creates a market research service. The llm
// parameter is optional (can be nil); without it analyses report the
// missing configuration instead of running.
func NewMarketResearcher(extractor driven.VideoMetadataExtractor, llm driven.LLMService) *MarketResearcher {
	return &MarketResearcher{
		extractor: extractor,
		llm:       llm,
		now:       time.Now,
	}
}

// SearchVideos fetches basic metadata for videos matching a term.
func (s *MarketResearcher) SearchVideos(ctx context.Context, term string, maxResults int) ([]domain.Video, error) {
	return s.extractor.Search(ctx, term, maxResults)
}

// AnalyzeContent summarises common themes across the videos and the
// unique angles left open for new content.
func (s *MarketResearcher) AnalyzeContent(ctx context.Context, videos []domain.Video) string {
	if s.llm == nil {
		return "API key not configured"
	}
	if len(videos) == 0 {
		return "No videos to analyze"
	}

	var summaries []string
	for i, video := range videos {
		summaries = append(summaries, fmt.Sprintf(
			"%d. Title: %s\n   Description: %s\n   Views: %s, Duration: %s\n",
			i+1, video.Title, video.Description, video.ViewCount, video.Duration))
	}

	content, err := s.llm.Generate(ctx,
		fmt.Sprintf(contentAnalysisPrompt, strings.Join(summaries, "\n")),
		driven.GenerateOptions{Temperature: 0.7})
	if err != nil {
		logger.Error("Content analysis failed: %v", err)
		return fmt.Sprintf("Analysis failed: %v", err)
	}
	return content
}

// ExtractTitlePatterns lists recurring title formats across the videos.
func (s *MarketResearcher) ExtractTitlePatterns(ctx context.Context, videos []domain.Video) []string {
	if s.llm == nil {
		return []string{"API key not configured"}
	}
	if len(videos) == 0 {
		return []string{"No videos to analyze"}
	}

	var titles []string
	for i, video := range videos {
		titles = append(titles, fmt.Sprintf("%d. %s", i+1, video.Title))
	}

	content, err := s.llm.Generate(ctx,
		fmt.Sprintf(titlePatternPrompt, strings.Join(titles, "\n")),
		driven.GenerateOptions{Temperature: 0.3})
	if err != nil {
		logger.Error("Title pattern extraction failed: %v", err)
		return []string{fmt.Sprintf("Pattern extraction failed: %v", err)}
	}
	return nonEmptyLines(content)
}

// AnalyzeTopics lists the subject areas the videos cover.
func (s *MarketResearcher) AnalyzeTopics(ctx context.Context, videos []domain.Video) []string {
	if s.llm == nil {
		return []string{"API key not configured"}
	}
	if len(videos) == 0 {
		return []string{"No videos to analyze"}
	}

	var entries []string
	for i, video := range videos {
		entries = append(entries, fmt.Sprintf(
			"%d. Title: %s\n   Description: %s\n", i+1, video.Title, video.Description))
	}

	content, err := s.llm.Generate(ctx,
		fmt.Sprintf(topicAnalysisPrompt, strings.Join(entries, "\n")),
		driven.GenerateOptions{Temperature: 0.3})
	if err != nil {
		logger.Error("Topic analysis failed: %v", err)
		return []string{fmt.Sprintf("Topic analysis failed: %v", err)}
	}
	return nonEmptyLines(content)
}

// TopicReport produces the full markdown market report for a topic:
// dataset overview, title patterns, topic coverage, gap analysis and
// canned strategy recommendations.
func (s *MarketResearcher) TopicReport(ctx context.Context, topic string, maxVideos int) string {
	if maxVideos <= 0 {
		maxVideos = defaultReportVideos
	}

	logger.Section("Market Analysis")

	var b strings.Builder
	fmt.Fprintf(&b, "# 📊 Market Analysis Report: %s\n\n", topic)
	fmt.Fprintf(&b, "**Generated:** %s  \n", s.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Videos Analyzed:** %d videos\n\n---\n\n", maxVideos)

	videos, err := s.extractor.Search(ctx, topic, maxVideos)
	if err != nil {
		logger.Error("Video search failed: %v", err)
	}
	if len(videos) == 0 {
		b.WriteString(`## ❌ Analysis Failed

**Error:** Unable to fetch videos for analysis.

**Possible causes:**
- yt-dlp not installed or configured
- Network connectivity issues
- Video platform access restrictions

**Recommendation:** Check your yt-dlp installation and try again.
`)
		return b.String()
	}

	fmt.Fprintf(&b, "## 📹 Video Dataset Overview\n\n")
	fmt.Fprintf(&b, "**Total videos found:** %d\n\n", len(videos))
	b.WriteString("### Top Videos Analyzed:\n\n")
	for i, video := range videos {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, video.Title)
		fmt.Fprintf(&b, "   - Views: %s | Duration: %s\n", video.ViewCount, video.Duration)
		fmt.Fprintf(&b, "   - *%s*\n\n", truncate(video.Description, 100))
	}
	if len(videos) > 5 {
		fmt.Fprintf(&b, "*...and %d more videos*\n\n", len(videos)-5)
	}
	b.WriteString("---\n\n")

	b.WriteString("## 🏷️ Title Pattern Analysis\n\n")
	patterns := s.ExtractTitlePatterns(ctx, videos)
	if analysisUsable(patterns) {
		b.WriteString("**Common title patterns identified:**\n\n")
		for i, pattern := range patterns {
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.Trim(pattern, "•-* "))
		}
		b.WriteString("\n**💡 Insight:** These patterns represent proven engagement formulas in this topic area.\n\n")
	} else {
		b.WriteString("⚠️ *Pattern analysis unavailable - API key may not be configured*\n\n")
	}
	b.WriteString("---\n\n")

	b.WriteString("## 🎯 Topic Coverage Analysis\n\n")
	topics := s.AnalyzeTopics(ctx, videos)
	if analysisUsable(topics) {
		b.WriteString("**Key topics and themes being covered:**\n\n")
		for _, item := range topics {
			fmt.Fprintf(&b, "- %s\n", strings.Trim(item, "•-* "))
		}
		b.WriteString("\n**💡 Insight:** This shows the current content landscape and saturation levels.\n\n")
	} else {
		b.WriteString("⚠️ *Topic analysis unavailable - API key may not be configured*\n\n")
	}
	b.WriteString("---\n\n")

	b.WriteString("## 🔍 Content Gap & Opportunity Analysis\n\n")
	analysis := s.AnalyzeContent(ctx, videos)
	if analysisUsable([]string{analysis}) {
		b.WriteString(analysis + "\n\n")
	} else {
		b.WriteString("⚠️ *Detailed analysis unavailable - API key may not be configured*\n\n")
	}

	b.WriteString("---\n\n## 🚀 Recommended Actions\n\n")
	competition := "moderate competition"
	if len(videos) >= highCompetitionThreshold {
		competition = "high competition"
	}
	b.WriteString("### Content Strategy:\n")
	fmt.Fprintf(&b, "1. **Market Size:** %d videos found suggests %s in this space\n", len(videos), competition)
	b.WriteString("2. **Differentiation:** Focus on unique angles identified in the gap analysis above\n")
	b.WriteString("3. **Title Strategy:** Consider variations of the successful patterns identified\n")
	b.WriteString("4. **Content Quality:** Aim to provide more comprehensive coverage than existing content\n\n")
	b.WriteString("### Next Steps:\n")
	b.WriteString("- Research specific subtopics with lower competition\n")
	b.WriteString("- Analyze audience engagement metrics for top performers\n")
	b.WriteString("- Consider collaboration opportunities with established creators\n")
	b.WriteString("- Plan content series around identified gaps\n\n")

	b.WriteString("---\n\n*Report generated by AI Mechanic Market Tools*")
	return b.String()
}

// analysisUsable reports whether analysis output is real content rather
// than an error placeholder.
func analysisUsable(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") || strings.Contains(lower, "failed") ||
			strings.Contains(lower, "not configured") || strings.Contains(lower, "no videos") {
			return false
		}
	}
	return true
}

func nonEmptyLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
