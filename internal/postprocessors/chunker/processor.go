// Package chunker splits cached article markdown into retrieval chunks.
package chunker

import (
	"fmt"
	"strings"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// DefaultChunkSize is the default character budget per chunk.
const DefaultChunkSize = 1000

// Processor splits markdown content along heading and paragraph
// boundaries, packing pieces greedily up to the chunk size. Chunk IDs
// are deterministic for a given source name and content, so re-indexing
// the same document produces the same IDs.
type Processor struct {
	chunkSize int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk character budget.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// New creates a chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits markdown content into chunks attributed to source.
// Sections are delimited by markdown headings; sections larger than the
// budget are split on paragraph breaks, and paragraphs are packed
// greedily so no chunk exceeds the budget unless a single paragraph
// does on its own.
func (p *Processor) Process(source, content string) []domain.Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var pieces []string
	for _, section := range splitSections(content) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if len(section) <= p.chunkSize {
			pieces = append(pieces, section)
			continue
		}
		pieces = append(pieces, p.packParagraphs(section)...)
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:       fmt.Sprintf("%s_%d", source, i),
			Source:   source,
			Content:  piece,
			Position: i,
		})
	}
	return chunks
}

// splitSections breaks markdown at heading lines. The heading line
// starts its section, so heading text stays with the prose under it.
func splitSections(content string) []string {
	lines := strings.Split(content, "\n")

	var sections []string
	var current []string
	for _, line := range lines {
		if isHeading(line) && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}
	return sections
}

func isHeading(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	hashes := len(line) - len(trimmed)
	return hashes >= 1 && hashes <= 6 && strings.HasPrefix(trimmed, " ")
}

// packParagraphs splits an oversized section on blank lines and packs
// the paragraphs greedily into pieces within the chunk budget. A lone
// paragraph over the budget becomes its own piece rather than being cut
// mid-sentence.
func (p *Processor) packParagraphs(section string) []string {
	paragraphs := strings.Split(section, "\n\n")

	var pieces []string
	var current strings.Builder
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() == 0 {
			current.WriteString(para)
			continue
		}
		if current.Len()+2+len(para) <= p.chunkSize {
			current.WriteString("\n\n")
			current.WriteString(para)
			continue
		}
		pieces = append(pieces, current.String())
		current.Reset()
		current.WriteString(para)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}
	return pieces
}
