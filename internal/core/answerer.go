// ABOUTME: Answerer turns retrieved chunks and a question into an Answer with sources
// ABOUTME: Makes exactly one generation call per question
package core

import (
	"context"
	"strings"

	"github.com/harper/document-assistant/internal/llm"
	"github.com/harper/document-assistant/internal/models"
)

// Answerer generates answers with a language model
type Answerer struct {
	generator llm.Generator
}

// NewAnswerer creates an Answerer
func NewAnswerer(generator llm.Generator) *Answerer {
	return &Answerer{generator: generator}
}

// Answer builds the stuff prompt, calls the model once, and attaches distinct sources
func (a *Answerer) Answer(ctx context.Context, question string, results []models.SearchResult) (models.Answer, error) {
	text, err := a.generator.Generate(ctx, BuildStuffPrompt(question, results))
	if err != nil {
		return models.Answer{}, &ExternalError{Service: ServiceGeneration, Err: err}
	}

	return models.NewAnswer(strings.TrimSpace(text), DistinctSources(results)), nil
}
