// ABOUTME: CLI command to describe a saved vector store
// ABOUTME: Prints the manifest and per-document chunk counts
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

var (
	infoDir string
)

// storeInfo is the structured form of the info output
type storeInfo struct {
	Directory string                `json:"directory" yaml:"directory"`
	Manifest  *models.IndexManifest `json:"manifest" yaml:"manifest"`
	Chunks    map[string]int        `json:"chunks_per_document" yaml:"chunks_per_document"`
}

// NewInfoCmd creates the info command
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show details of a saved vector store",
		Long: `Show details of a saved vector store.

Prints the embedding model, vector dimension, creation time,
and the number of chunks indexed for each document.`,
		Args: cobra.NoArgs,
		RunE: runInfo,
	}

	cmd.Flags().StringVar(&infoDir, "dir", "", "Vector store directory (default from config: document_vectors)")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	dir := dirOrDefault(infoDir, cfg)
	store, err := storage.OpenSaved(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	manifest, err := store.Manifest(ctx)
	if err != nil {
		return err
	}
	counts, err := store.ChunkCounts(ctx)
	if err != nil {
		return err
	}

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, storeInfo{Directory: dir, Manifest: manifest, Chunks: counts})
	}

	out := cmd.OutOrStdout()
	_, _ = labelColor.Fprintf(out, "Vector store: %s\n", dir)
	fmt.Fprintf(out, "Embedding model: %s\n", manifest.EmbeddingModel)
	fmt.Fprintf(out, "Dimension:       %d\n", manifest.Dimension)
	fmt.Fprintf(out, "Chunks:          %d\n", manifest.ChunkCount)
	fmt.Fprintf(out, "Created:         %s (%s)\n", manifest.CreatedAt.Format("2006-01-02 15:04:05"), formatTime(manifest.CreatedAt))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CHUNKS\tDOCUMENT\n")
	fmt.Fprintf(w, "------\t--------\n")
	for _, doc := range manifest.Documents {
		fmt.Fprintf(w, "%d\t%s\n", counts[doc], truncate(doc, 70))
	}
	w.Flush()

	return nil
}
