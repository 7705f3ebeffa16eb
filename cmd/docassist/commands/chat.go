// ABOUTME: CLI command for an interactive terminal chat with your documents
// ABOUTME: Loads or builds a vector store, then starts the Bubble Tea chat
package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/storage"
	"github.com/harper/document-assistant/internal/tui"
)

var (
	chatDir string
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [file.pdf...]",
		Short: "Chat with your documents in the terminal",
		Long: `Start an interactive chat about your documents.

If the vector store directory exists it is loaded first. Any PDFs
given on the command line are then processed into a new vector
store, which replaces the loaded one and is saved.

Inside the chat, type a question, or one of:
  /process <file.pdf>...   /save [dir]   /load [dir]   /clear   /quit`,
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatDir, "dir", "", "Vector store directory (default from config: document_vectors)")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The chat owns the terminal; only errors are logged
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	if !verbose {
		logger.SetLevel(log.ErrorLevel)
	}

	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	session := core.NewSession(assistant)

	ctx := cmd.Context()
	dir := dirOrDefault(chatDir, cfg)
	if storage.Exists(dir) {
		if err := assistant.Load(ctx, dir); err != nil {
			_, _ = warnColor.Fprintf(cmd.ErrOrStderr(), "Failed to load vector store from %s: %v\n", dir, err)
		}
	}

	if len(args) > 0 {
		report, err := assistant.Process(ctx, args)
		if err != nil {
			return err
		}
		printReport(cmd.ErrOrStderr(), report)
		if report.Built {
			if err := assistant.Save(ctx, dir); err != nil && !errors.Is(err, core.ErrNoVectorStore) {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Vector Store saved to %s\n", dir)
		}
	}

	program := tea.NewProgram(tui.New(ctx, session, dir), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running chat: %w", err)
	}

	assistant.Discard()
	return nil
}
