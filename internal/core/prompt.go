// ABOUTME: Assembles the single "stuff" prompt from retrieved chunks and a question
// ABOUTME: All retrieved context is placed into one prompt for one generation call
package core

import (
	"strings"

	"github.com/harper/document-assistant/internal/models"
)

const stuffInstructions = "Use the following pieces of context to answer the question at the end. " +
	"If you don't know the answer, just say that you don't know, don't try to make up an answer."

// BuildStuffPrompt concatenates chunk texts, separated by blank lines, ahead of the question
func BuildStuffPrompt(question string, results []models.SearchResult) string {
	contexts := make([]string, 0, len(results))
	for _, r := range results {
		contexts = append(contexts, r.Chunk.Content)
	}

	var b strings.Builder
	b.WriteString(stuffInstructions)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nHelpful Answer:")
	return b.String()
}

// DistinctSources returns chunk sources without duplicates, in first-seen order
func DistinctSources(results []models.SearchResult) []string {
	sources := []string{}
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Chunk.Source == "" || seen[r.Chunk.Source] {
			continue
		}
		seen[r.Chunk.Source] = true
		sources = append(sources, r.Chunk.Source)
	}
	return sources
}
