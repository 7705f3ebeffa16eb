// ABOUTME: Install Claude Code skill for docassist
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package commands

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

// NewInstallSkillCmd creates the install-skill command
func NewInstallSkillCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "install-skill",
		Short: "Install Claude Code skill",
		Long: `Install the docassist skill for Claude Code.

This copies the skill definition to ~/.claude/skills/docassist/
so Claude Code can process and query your PDFs contextually.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return installSkill(cmd, skipConfirm)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func installSkill(cmd *cobra.Command, skipConfirm bool) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	skillDir := filepath.Join(home, ".claude", "skills", "docassist")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "┌─────────────────────────────────────────────────────────────┐")
	_, _ = fmt.Fprintln(out, "│          Document Assistant Skill for Claude Code           │")
	_, _ = fmt.Fprintln(out, "└─────────────────────────────────────────────────────────────┘")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "This will install the docassist skill, enabling Claude Code to:")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "  • Build vector stores from your PDF documents")
	_, _ = fmt.Fprintln(out, "  • Answer questions with the source documents listed")
	_, _ = fmt.Fprintln(out, "  • Inspect and export saved vector stores")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Destination:")
	_, _ = fmt.Fprintf(out, "  %s\n", skillPath)
	_, _ = fmt.Fprintln(out)

	if _, err := os.Stat(skillPath); err == nil {
		_, _ = fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		_, _ = fmt.Fprintln(out)
	}

	if !skipConfirm {
		_, _ = fmt.Fprint(out, "Install the docassist skill? [y/N] ")
		reader := bufio.NewReader(cmd.InOrStdin())
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			_, _ = fmt.Fprintln(out, "Installation cancelled.")
			return nil
		}
		_, _ = fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	_, _ = fmt.Fprintln(out, "✓ Installed docassist skill successfully!")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Try asking Claude: \"Index the PDFs in ./contracts and tell me the termination terms.\"")
	return nil
}
