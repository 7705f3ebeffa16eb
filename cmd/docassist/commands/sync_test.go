// ABOUTME: Tests for sync command structure
// ABOUTME: Verifies subcommands and the wipe confirmation guard

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSyncCmd(t *testing.T) {
	cmd := NewSyncCmd()

	if cmd.Use != "sync" {
		t.Errorf("Use = %q, want %q", cmd.Use, "sync")
	}

	if !strings.Contains(cmd.Long, "Charm") {
		t.Error("Long description should mention Charm")
	}

	if cmd.PersistentFlags().Lookup("dir") == nil {
		t.Error("--dir flag should exist")
	}
}

func TestSyncCmd_Subcommands(t *testing.T) {
	cmd := NewSyncCmd()

	for _, name := range []string{"status", "push", "pull", "list", "delete", "wipe", "keys"} {
		t.Run(name, func(t *testing.T) {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Use == name || strings.HasPrefix(sub.Use, name+" ") {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %q not found", name)
			}
		})
	}
}

func TestSyncWipe_RequiresConfirm(t *testing.T) {
	cmd := NewSyncCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"wipe"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("wipe without --confirm should not fail: %v", err)
	}
	if !strings.Contains(output.String(), "--confirm") {
		t.Errorf("output = %q, want a hint about --confirm", output.String())
	}
}

func TestSyncName(t *testing.T) {
	if got := syncName([]string{"papers"}, "document_vectors"); got != "papers" {
		t.Errorf("syncName = %q, want papers", got)
	}
	if got := syncName(nil, "/data/stores/legal"); got != "legal" {
		t.Errorf("syncName = %q, want legal", got)
	}
}
