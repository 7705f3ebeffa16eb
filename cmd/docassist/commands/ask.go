// ABOUTME: CLI command to answer one question from a saved vector store
// ABOUTME: Prints the answer and its distinct sources
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

var (
	askDir string
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question about your documents",
		Long: `Answer a question using a saved vector store.

The four chunks most similar to the question are passed to the
language model, which answers from them. The distinct source
documents of those chunks are listed after the answer.

Examples:
  docassist ask "What is the refund policy?"
  docassist ask --dir stores/legal "Who are the parties?"
  docassist ask --format json "Summarise chapter 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askDir, "dir", "", "Vector store directory (default from config: document_vectors)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	ctx := cmd.Context()
	dir := dirOrDefault(askDir, cfg)

	// No saved store: soft-fail answer without building model clients
	if !storage.Exists(dir) {
		logger.Warn("No Vector Store found at the specified directory.", "dir", dir)
		return writeAnswer(cmd.OutOrStdout(), format, models.NewAnswer(core.NoVectorStoreMessage, nil))
	}

	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	if err := assistant.Load(ctx, dir); err != nil {
		return err
	}

	question := strings.Join(args, " ")
	answer, err := assistant.Answer(ctx, question)
	if err != nil {
		var ext *core.ExternalError
		if errors.As(err, &ext) {
			logger.Error("model call failed", "service", ext.Service, "err", ext.Err)
		}
		return err
	}

	return writeAnswer(cmd.OutOrStdout(), format, answer)
}

func writeAnswer(w io.Writer, format string, answer models.Answer) error {
	if format != formatText {
		return writeStructured(w, format, answer)
	}
	printAnswer(w, answer)
	return nil
}

func printAnswer(w io.Writer, a models.Answer) {
	_, _ = labelColor.Fprint(w, "Answer: ")
	_, _ = fmt.Fprintln(w, a.Answer)

	if len(a.Sources) == 0 {
		return
	}
	_, _ = labelColor.Fprintln(w, "Sources:")
	for _, s := range a.Sources {
		_, _ = sourceColor.Fprintf(w, "- %s\n", s)
	}
}
