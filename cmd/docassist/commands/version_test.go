// ABOUTME: Tests for version command
// ABOUTME: Verifies version info display and SetVersion functionality

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestVersionCmd_Output(t *testing.T) {
	original := versionInfo
	defer func() { versionInfo = original }()

	SetVersion("1.2.3", "abc123", "2026-01-31")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := output.String()
	for _, want := range []string{"Document Assistant 1.2.3", "Commit: abc123", "Built:  2026-01-31", "Store:  <dir>/index.db"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	original, originalFormat := versionInfo, outputFormat
	defer func() { versionInfo, outputFormat = original, originalFormat }()

	SetVersion("1.2.3", "abc123", "2026-01-31")
	outputFormat = "json"

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var report struct {
		Version   string `json:"version"`
		Commit    string `json:"commit"`
		GoVersion string `json:"go_version"`
		IndexFile string `json:"index_file"`
	}
	if err := json.Unmarshal(output.Bytes(), &report); err != nil {
		t.Fatalf("decode %q: %v", output.String(), err)
	}
	if report.Version != "1.2.3" || report.Commit != "abc123" {
		t.Errorf("report = %+v", report)
	}
	if report.GoVersion == "" || report.IndexFile != "index.db" {
		t.Errorf("report = %+v, want go version and index.db", report)
	}
}
