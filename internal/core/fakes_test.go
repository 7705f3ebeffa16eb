// ABOUTME: Test doubles for embedders, generators, and document loading
// ABOUTME: Deterministic keyword vectors make retrieval order predictable
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/harper/document-assistant/internal/models"
)

var keywords = []string{"alpha", "beta", "gamma", "delta"}

type fakeEmbedder struct {
	model string
	err   error

	mu    sync.Mutex
	calls int
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{model: "fake:keywords"}
}

func (f *fakeEmbedder) vector(text string) []float64 {
	lower := strings.ToLower(text)
	v := make([]float64, len(keywords)+1)
	for i, k := range keywords {
		v[i] = float64(strings.Count(lower, k))
	}
	v[len(keywords)] = 0.01
	return v
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) ModelInfo() string { return f.model }

func (f *fakeEmbedder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeGenerator struct {
	reply string
	err   error

	mu      sync.Mutex
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.reply == "" {
		return "  generated answer  ", nil
	}
	return f.reply, nil
}

func (f *fakeGenerator) ModelInfo() string { return "fake:generator" }

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeGenerator) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// fakeLoader serves documents from memory keyed by path
type fakeLoader map[string]*models.Document

func (l fakeLoader) Load(path string) (*models.Document, error) {
	doc, ok := l[path]
	if !ok {
		return nil, fmt.Errorf("failed to open %s: %w", path, errors.New("no such file"))
	}
	return doc, nil
}

func doc(source string, pages ...string) *models.Document {
	d := &models.Document{Source: source}
	for i, text := range pages {
		d.Pages = append(d.Pages, models.Page{Source: source, Page: i + 1, Text: text})
	}
	return d
}

func newTestAssistant(docs fakeLoader) (*Assistant, *fakeEmbedder, *fakeGenerator) {
	emb := newFakeEmbedder()
	gen := &fakeGenerator{}
	a, err := NewAssistant(Options{
		Embedder:  emb,
		Generator: gen,
		Load:      docs.Load,
	})
	if err != nil {
		panic(err)
	}
	return a, emb, gen
}
