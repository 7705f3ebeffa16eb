// ABOUTME: Export functionality for persisted indexes
// ABOUTME: Writes chunk text grouped by document as YAML or Markdown (vectors omitted)
package sqlite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData represents the full export structure
type ExportData struct {
	Version        string           `yaml:"version" json:"version"`
	ExportedAt     string           `yaml:"exported_at" json:"exported_at"`
	Tool           string           `yaml:"tool" json:"tool"`
	EmbeddingModel string           `yaml:"embedding_model" json:"embedding_model"`
	Dimension      int              `yaml:"dimension" json:"dimension"`
	Documents      []ExportDocument `yaml:"documents" json:"documents"`
}

// ExportDocument represents one source document in export
type ExportDocument struct {
	Source string        `yaml:"source" json:"source"`
	Chunks []ExportChunk `yaml:"chunks" json:"chunks"`
}

// ExportChunk represents a chunk in export
type ExportChunk struct {
	ChunkID string `yaml:"chunk_id" json:"chunk_id"`
	Page    int    `yaml:"page" json:"page"`
	Content string `yaml:"content" json:"content"`
}

// Export collects the manifest and chunk text, grouped by source in first-seen order
func (s *Storage) Export(ctx context.Context) (*ExportData, error) {
	m, err := s.manifest.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}

	chunks, err := s.chunks.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	data := &ExportData{
		Version:        "1.0",
		ExportedAt:     time.Now().Format(time.RFC3339),
		Tool:           "docassist",
		EmbeddingModel: m.EmbeddingModel,
		Dimension:      m.Dimension,
		Documents:      []ExportDocument{},
	}

	bySource := make(map[string]int)
	for _, c := range chunks {
		idx, ok := bySource[c.Source]
		if !ok {
			idx = len(data.Documents)
			bySource[c.Source] = idx
			data.Documents = append(data.Documents, ExportDocument{Source: c.Source})
		}
		data.Documents[idx].Chunks = append(data.Documents[idx].Chunks, ExportChunk{
			ChunkID: c.ChunkID,
			Page:    c.Page,
			Content: c.Content,
		})
	}

	return data, nil
}

// ExportToYAML exports data to a YAML file
func (s *Storage) ExportToYAML(ctx context.Context, outputPath string) error {
	data, err := s.Export(ctx)
	if err != nil {
		return err
	}

	file, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	return WriteYAML(file, data)
}

// WriteYAML encodes export data as YAML
func WriteYAML(w io.Writer, data *ExportData) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// ExportToMarkdown exports data to a Markdown file
func (s *Storage) ExportToMarkdown(ctx context.Context, outputPath string) error {
	data, err := s.Export(ctx)
	if err != nil {
		return err
	}

	file, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	WriteMarkdown(file, data)
	return nil
}

// WriteMarkdown renders export data as Markdown
func WriteMarkdown(w io.Writer, data *ExportData) {
	_, _ = fmt.Fprintf(w, "# Vector Store Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)
	_, _ = fmt.Fprintf(w, "- **Embedding model:** %s\n", data.EmbeddingModel)
	_, _ = fmt.Fprintf(w, "- **Dimension:** %d\n\n", data.Dimension)

	for _, doc := range data.Documents {
		_, _ = fmt.Fprintf(w, "## %s\n\n", doc.Source)
		for _, c := range doc.Chunks {
			_, _ = fmt.Fprintf(w, "### Page %d (%s)\n\n", c.Page, c.ChunkID)
			_, _ = fmt.Fprintf(w, "%s\n\n", c.Content)
		}
		_, _ = fmt.Fprintln(w, "---")
		_, _ = fmt.Fprintln(w)
	}
}

func createOutput(outputPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
