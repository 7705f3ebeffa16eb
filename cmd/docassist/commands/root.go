// ABOUTME: Root command and global flags for the docassist CLI
// ABOUTME: Wires configuration, logging, and the assistant shared by subcommands
package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/config"
	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/llm"
	"github.com/harper/document-assistant/internal/logging"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string
)

const banner = `
██████╗  ██████╗  ██████╗ █████╗ ███████╗███████╗██╗███████╗████████╗
██╔══██╗██╔═══██╗██╔════╝██╔══██╗██╔════╝██╔════╝██║██╔════╝╚══██╔══╝
██║  ██║██║   ██║██║     ███████║███████╗███████╗██║███████╗   ██║
██║  ██║██║   ██║██║     ██╔══██║╚════██║╚════██║██║╚════██║   ██║
██████╔╝╚██████╔╝╚██████╗██║  ██║███████║███████║██║███████║   ██║
╚═════╝  ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝╚══════╝   ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docassist",
		Short: "Ask questions about your PDF documents",
		Long: banner + `

Document Assistant answers questions about PDF documents using
retrieval-augmented generation. Documents are split into chunks,
embedded, and stored in a local vector store; each question is
answered from the four most relevant chunks, with the source
documents listed alongside the answer.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, json, yaml")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/document-assistant/config.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewProcessCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewInstallSkillCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads .env, the config file, and the environment
func loadConfig() (*config.Config, error) {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command, honouring --verbose and --quiet
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return logging.ForFlags(w, cfg.LogLevel, verbose, quiet)
}

// newAssistant builds an Assistant from configuration
func newAssistant(cfg *config.Config, logger *log.Logger) (*core.Assistant, error) {
	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}
	generator, err := llm.NewGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing generator: %w", err)
	}
	chunker, err := core.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	return core.NewAssistant(core.Options{
		Embedder:  embedder,
		Generator: generator,
		Chunker:   chunker,
		TopK:      cfg.TopK,
		Logger:    logger,
	})
}

// dirOrDefault returns dir, or the configured vector store directory when empty
func dirOrDefault(dir string, cfg *config.Config) string {
	if dir != "" {
		return dir
	}
	return cfg.VectorStoreDir
}
