// ABOUTME: Assistant owns the live vector index and the Unloaded/Loaded/Discarded lifecycle
// ABOUTME: Processes PDFs into an index, saves and loads it, and answers questions
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harper/document-assistant/internal/llm"
	"github.com/harper/document-assistant/internal/loader"
	"github.com/harper/document-assistant/internal/logging"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

// State is the lifecycle state of an Assistant
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateDiscarded
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateDiscarded:
		return "discarded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LoadFunc reads a document from a path
type LoadFunc func(path string) (*models.Document, error)

// Options configures an Assistant
type Options struct {
	Embedder  llm.Embedder
	Generator llm.Generator
	// Chunker defaults to 1000/200 when nil
	Chunker *Chunker
	// TopK defaults to 4 when zero
	TopK int
	// Load defaults to the PDF loader when nil
	Load   LoadFunc
	Logger *log.Logger
}

// FileReport describes what happened to one input file during processing
type FileReport struct {
	Path    string `json:"path" yaml:"path"`
	Chunks  int    `json:"chunks" yaml:"chunks"`
	Skipped bool   `json:"skipped" yaml:"skipped"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ProcessReport summarises a Process call
type ProcessReport struct {
	Files       []FileReport `json:"files" yaml:"files"`
	TotalChunks int          `json:"total_chunks" yaml:"total_chunks"`
	Built       bool         `json:"built" yaml:"built"`
	Message     string       `json:"message" yaml:"message"`
}

// Assistant answers questions over one vector index at a time
type Assistant struct {
	embedder  llm.Embedder
	generator llm.Generator
	chunker   *Chunker
	topK      int
	load      LoadFunc
	logger    *log.Logger

	mu    sync.RWMutex
	index *storage.VectorIndex
	state State
}

// NewAssistant creates an Assistant in the Unloaded state
func NewAssistant(opts Options) (*Assistant, error) {
	if opts.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}

	a := &Assistant{
		embedder:  opts.Embedder,
		generator: opts.Generator,
		chunker:   opts.Chunker,
		topK:      opts.TopK,
		load:      opts.Load,
		logger:    opts.Logger,
		state:     StateUnloaded,
	}
	if a.chunker == nil {
		a.chunker = NewDefaultChunker()
	}
	if a.topK <= 0 {
		a.topK = DefaultTopK
	}
	if a.load == nil {
		a.load = loader.Load
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	return a, nil
}

// State returns the current lifecycle state
func (a *Assistant) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Loaded reports whether an index is live
func (a *Assistant) Loaded() bool {
	return a.State() == StateLoaded
}

// Manifest returns the live index manifest, if any
func (a *Assistant) Manifest() (models.IndexManifest, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.index == nil {
		return models.IndexManifest{}, false
	}
	return a.index.Manifest(), true
}

// EmbeddingModel identifies the embedder used for indexing and queries
func (a *Assistant) EmbeddingModel() string {
	return a.embedder.ModelInfo()
}

// GenerationModel identifies the generator used for answers
func (a *Assistant) GenerationModel() string {
	return a.generator.ModelInfo()
}

// Process loads, chunks, and embeds the given files and replaces the live index.
// Files that cannot be used are reported and skipped.
func (a *Assistant) Process(ctx context.Context, paths []string) (ProcessReport, error) {
	if a.State() == StateDiscarded {
		return ProcessReport{}, ErrDiscarded
	}

	report := ProcessReport{Files: []FileReport{}}
	var chunks []models.Chunk

	for _, path := range paths {
		if !loader.Supported(path) {
			a.logger.Warn("unsupported file format", "path", path)
			report.Files = append(report.Files, FileReport{Path: path, Skipped: true, Reason: "Unsupported file format: " + path})
			continue
		}

		doc, err := a.load(path)
		if err != nil {
			a.logger.Warn("failed to load document", "path", path, "err", err)
			report.Files = append(report.Files, FileReport{Path: path, Skipped: true, Reason: err.Error()})
			continue
		}

		docChunks, err := a.chunker.ChunkDocument(doc)
		if err != nil {
			return ProcessReport{}, fmt.Errorf("failed to chunk %s: %w", path, err)
		}
		if len(docChunks) == 0 {
			a.logger.Warn("document has no extractable text", "path", path)
			report.Files = append(report.Files, FileReport{Path: path, Skipped: true, Reason: "no extractable text"})
			continue
		}

		a.logger.Info("processed document", "path", path, "chunks", len(docChunks))
		report.Files = append(report.Files, FileReport{Path: path, Chunks: len(docChunks)})
		chunks = append(chunks, docChunks...)
	}

	report.TotalChunks = len(chunks)
	if len(chunks) == 0 {
		report.Message = NoDocumentsMessage
		a.logger.Warn(NoDocumentsMessage)
		return report, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := a.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return ProcessReport{}, &ExternalError{Service: ServiceEmbedding, Err: err}
	}
	if len(vectors) != len(chunks) {
		return ProcessReport{}, &ExternalError{
			Service: ServiceEmbedding,
			Err:     fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)),
		}
	}

	embedded := make([]models.EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		embedded[i] = models.EmbeddedChunk{Chunk: c, Vector: vectors[i]}
	}

	index, err := storage.BuildIndex(embedded, a.embedder.ModelInfo())
	if err != nil {
		return ProcessReport{}, fmt.Errorf("failed to build vector store: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateDiscarded {
		return ProcessReport{}, ErrDiscarded
	}
	a.index = index
	a.state = StateLoaded

	report.Built = true
	report.Message = fmt.Sprintf("Vector store built with %d chunks.", len(chunks))
	a.logger.Info("vector store built", "chunks", len(chunks), "model", a.embedder.ModelInfo())
	return report, nil
}

// Save writes the live index to dir
func (a *Assistant) Save(ctx context.Context, dir string) error {
	a.mu.RLock()
	index := a.index
	a.mu.RUnlock()

	if index == nil {
		return ErrNoVectorStore
	}
	if err := index.Save(ctx, dir); err != nil {
		return fmt.Errorf("failed to save vector store: %w", err)
	}

	a.logger.Info("vector store saved", "dir", dir)
	return nil
}

// Load replaces the live index with the one saved in dir.
// On any failure the previous state is kept.
func (a *Assistant) Load(ctx context.Context, dir string) error {
	if a.State() == StateDiscarded {
		return ErrDiscarded
	}

	index, err := storage.LoadIndex(ctx, dir)
	if err != nil {
		return err
	}

	m := index.Manifest()
	if want := a.embedder.ModelInfo(); m.EmbeddingModel != want {
		return fmt.Errorf("%w: index uses %s, configured embedder is %s", ErrEmbedderMismatch, m.EmbeddingModel, want)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateDiscarded {
		return ErrDiscarded
	}
	a.index = index
	a.state = StateLoaded

	a.logger.Info("vector store loaded", "dir", dir, "chunks", index.Len())
	return nil
}

// Answer answers question against the live index. Without one it returns
// the no-vector-store message and empty sources without calling any model.
func (a *Assistant) Answer(ctx context.Context, question string) (models.Answer, error) {
	answer, _, err := a.AnswerWithContext(ctx, question)
	return answer, err
}

// AnswerWithContext is Answer that also returns the retrieved chunks
func (a *Assistant) AnswerWithContext(ctx context.Context, question string) (models.Answer, []models.SearchResult, error) {
	a.mu.RLock()
	index := a.index
	a.mu.RUnlock()

	if index == nil {
		return models.NewAnswer(NoVectorStoreMessage, nil), nil, nil
	}
	if strings.TrimSpace(question) == "" {
		return models.Answer{}, nil, ErrEmptyQuestion
	}

	results, err := NewRetriever(index, a.embedder, a.topK).Retrieve(ctx, question)
	if err != nil {
		return models.Answer{}, nil, err
	}
	a.logger.Debug("retrieved chunks", "count", len(results))

	answer, err := NewAnswerer(a.generator).Answer(ctx, question, results)
	if err != nil {
		return models.Answer{}, results, err
	}
	return answer, results, nil
}

// Discard drops the live index; the assistant then behaves as unloaded
// and refuses to process or load again.
func (a *Assistant) Discard() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.index = nil
	a.state = StateDiscarded
}
