// ABOUTME: Tests for the install-skill command
// ABOUTME: Verifies skill installation, directory creation, and file content

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runInstallSkill(t *testing.T, args []string, stdin string) string {
	t.Helper()
	cmd := NewInstallSkillCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Command execution failed: %v", err)
	}
	return output.String()
}

func TestNewInstallSkillCmd(t *testing.T) {
	cmd := NewInstallSkillCmd()

	if cmd.Use != "install-skill" {
		t.Errorf("Use = %q, want %q", cmd.Use, "install-skill")
	}

	yesFlag := cmd.Flags().Lookup("yes")
	if yesFlag == nil {
		t.Fatal("--yes flag should exist")
	}
	if yesFlag.Shorthand != "y" {
		t.Errorf("--yes shorthand = %q, want %q", yesFlag.Shorthand, "y")
	}
}

func TestInstallSkill_SuccessfulInstallation(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	out := runInstallSkill(t, []string{"--yes"}, "")

	skillPath := filepath.Join(tmpHome, ".claude", "skills", "docassist", "SKILL.md")
	content, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read installed SKILL.md: %v", err)
	}

	for _, expected := range []string{"name: docassist", "docassist process", "docassist ask"} {
		if !strings.Contains(string(content), expected) {
			t.Errorf("SKILL.md should contain %q", expected)
		}
	}

	if !strings.Contains(out, "Installed docassist skill successfully") {
		t.Errorf("Output should contain success message, got: %s", out)
	}
}

func TestInstallSkill_OverwriteScenario(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	skillDir := filepath.Join(tmpHome, ".claude", "skills", "docassist")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("# Old skill content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	out := runInstallSkill(t, []string{"--yes"}, "")

	if !strings.Contains(out, "already exists") {
		t.Error("Output should warn about overwriting")
	}
	content, _ := os.ReadFile(skillPath)
	if strings.Contains(string(content), "Old skill content") {
		t.Error("Old skill content should have been overwritten")
	}
}

func TestInstallSkill_Prompt(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		installed bool
	}{
		{"yes", "y\n", true},
		{"full yes", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpHome := t.TempDir()
			t.Setenv("HOME", tmpHome)

			out := runInstallSkill(t, []string{}, tt.answer)

			_, err := os.Stat(filepath.Join(tmpHome, ".claude", "skills", "docassist", "SKILL.md"))
			if got := err == nil; got != tt.installed {
				t.Errorf("installed = %v, want %v", got, tt.installed)
			}
			if !tt.installed && !strings.Contains(out, "Installation cancelled.") {
				t.Errorf("Output should say cancelled, got: %s", out)
			}
		})
	}
}
