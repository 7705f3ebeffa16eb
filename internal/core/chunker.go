// ABOUTME: Chunker splits page text into overlapping fixed-size chunks
// ABOUTME: Recursive character splitting on paragraph, line, word, then character boundaries
package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/document-assistant/internal/models"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the overlap between consecutive chunks in characters
	DefaultChunkOverlap = 200
)

// Chunker handles splitting documents into chunks
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
	size     int
	overlap  int
}

// NewChunker creates a Chunker; overlap must be smaller than size
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}

	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
		size:    size,
		overlap: overlap,
	}, nil
}

// NewDefaultChunker creates a Chunker with 1000/200 settings
func NewDefaultChunker() *Chunker {
	c, _ := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	return c
}

// SplitText splits text into segments; blank text yields none
func (c *Chunker) SplitText(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	parts, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	segments := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			segments = append(segments, p)
		}
	}
	return segments, nil
}

// ChunkDocument splits every page of doc; each chunk carries its page number
func (c *Chunker) ChunkDocument(doc *models.Document) ([]models.Chunk, error) {
	var chunks []models.Chunk

	for _, page := range doc.Pages {
		segments, err := c.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Page, err)
		}

		for _, seg := range segments {
			chunks = append(chunks, models.Chunk{
				ChunkID: generateChunkID(),
				Content: seg,
				Source:  doc.Source,
				Page:    page.Page,
			})
		}
	}

	return chunks, nil
}

// generateChunkID creates a unique chunk ID
func generateChunkID() string {
	return "chunk_" + uuid.New().String()
}
