// ABOUTME: CLI command to export a saved vector store's chunks
// ABOUTME: Writes chunks grouped by source document as YAML or Markdown
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/storage"
	"github.com/harper/document-assistant/internal/storage/sqlite"
)

var (
	exportDir    string
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the chunks of a saved vector store",
		Long: `Export the chunks of a saved vector store for inspection.

Chunks are grouped by source document in the order they were indexed.
Supported formats are yaml (default) and markdown. Vectors are not
exported.

Examples:
  docassist export
  docassist export -f markdown -o chunks.md
  docassist export --dir stores/legal -o legal.yaml`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportDir, "dir", "", "Vector store directory (default from config: document_vectors)")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Export format: yaml or markdown")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format == "md" {
		format = "markdown"
	}
	if format != "yaml" && format != "markdown" {
		return fmt.Errorf("unknown export format %q (want yaml or markdown)", exportFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := dirOrDefault(exportDir, cfg)
	store, err := storage.OpenSaved(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if exportOutput != "" {
		if format == "yaml" {
			err = store.ExportToYAML(ctx, exportOutput)
		} else {
			err = store.ExportToMarkdown(ctx, exportOutput)
		}
		if err != nil {
			return err
		}
		if !quiet {
			_, _ = okColor.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", dir, exportOutput)
		}
		return nil
	}

	data, err := store.Export(ctx)
	if err != nil {
		return err
	}
	if format == "yaml" {
		return sqlite.WriteYAML(cmd.OutOrStdout(), data)
	}
	sqlite.WriteMarkdown(cmd.OutOrStdout(), data)
	return nil
}
