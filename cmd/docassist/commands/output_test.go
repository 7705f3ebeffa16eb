// ABOUTME: Tests for output format resolution and structured rendering
// ABOUTME: Covers --format values and JSON/YAML encoding

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveFormat(t *testing.T) {
	original := outputFormat
	defer func() { outputFormat = original }()

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"auto", formatText, false},
		{"", formatText, false},
		{"text", formatText, false},
		{"json", formatJSON, false},
		{"yaml", formatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outputFormat = tt.format
			got, err := resolveFormat(&bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveFormat_AutoToFile(t *testing.T) {
	original := outputFormat
	defer func() { outputFormat = original }()
	outputFormat = "auto"

	f, err := os.Create(filepath.Join(t.TempDir(), "out.json"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	got, err := resolveFormat(f)
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != formatJSON {
		t.Errorf("resolveFormat(file) = %q, want json", got)
	}
}

func TestWriteStructured(t *testing.T) {
	v := struct {
		Answer  string   `json:"answer" yaml:"answer"`
		Sources []string `json:"sources" yaml:"sources"`
	}{"hi", []string{"a.pdf"}}

	var buf bytes.Buffer
	if err := writeStructured(&buf, formatJSON, v); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"answer": "hi"`) {
		t.Errorf("json output = %s", buf.String())
	}

	buf.Reset()
	if err := writeStructured(&buf, formatYAML, v); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "answer: hi") || !strings.Contains(buf.String(), "- a.pdf") {
		t.Errorf("yaml output = %s", buf.String())
	}

	if err := writeStructured(&buf, formatText, v); err == nil {
		t.Error("expected error for text format")
	}
}
