// ABOUTME: CLI command to build a vector store from PDF documents
// ABOUTME: Processes files, reports skipped ones, and saves the result
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/core"
)

var (
	processDir    string
	processNoSave bool
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file.pdf>...",
		Short: "Build a vector store from PDF documents",
		Long: `Build a vector store from PDF documents.

Each PDF is split into overlapping chunks, embedded, and indexed.
Files that are not PDFs or cannot be read are skipped and reported.
The new vector store is saved to the vector store directory.

Examples:
  docassist process handbook.pdf policies.pdf
  docassist process --dir stores/legal contract.pdf
  docassist process --format json *.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().StringVar(&processDir, "dir", "", "Vector store directory (default from config: document_vectors)")
	cmd.Flags().BoolVar(&processNoSave, "no-save", false, "Build the vector store without saving it")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	report, err := assistant.Process(ctx, args)
	if err != nil {
		return err
	}

	dir := dirOrDefault(processDir, cfg)
	saved := false
	if report.Built && !processNoSave {
		if err := assistant.Save(ctx, dir); err != nil {
			return err
		}
		saved = true
	}

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, struct {
			core.ProcessReport `yaml:",inline"`
			Saved              bool   `json:"saved" yaml:"saved"`
			Directory          string `json:"directory,omitempty" yaml:"directory,omitempty"`
		}{report, saved, savedDir(saved, dir)})
	}

	printReport(cmd.OutOrStdout(), report)
	if saved {
		_, _ = okColor.Fprintf(cmd.OutOrStdout(), "Vector Store saved to %s\n", dir)
	}
	if !report.Built {
		return errors.New(report.Message)
	}
	return nil
}

func savedDir(saved bool, dir string) string {
	if saved {
		return dir
	}
	return ""
}

func printReport(w io.Writer, r core.ProcessReport) {
	for _, f := range r.Files {
		if f.Skipped {
			_, _ = warnColor.Fprintf(w, "Skipped %s: %s\n", f.Path, f.Reason)
			continue
		}
		_, _ = fmt.Fprintf(w, "Processed %s with %d chunks.\n", f.Path, f.Chunks)
	}
	if r.Built {
		_, _ = okColor.Fprintln(w, r.Message)
	}
}
