// ABOUTME: Output formatting shared by commands
// ABOUTME: Resolves --format and renders JSON, YAML, or coloured text
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	labelColor  = color.New(color.FgCyan, color.Bold)
	sourceColor = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
)

// resolveFormat maps --format onto text, json, or yaml.
// auto means text, except when stdout is redirected to a file or pipe.
func resolveFormat(w io.Writer) (string, error) {
	switch outputFormat {
	case "", "auto":
		if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return formatJSON, nil
		}
		return formatText, nil
	case formatText, formatJSON, formatYAML:
		return outputFormat, nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, text, json, or yaml)", outputFormat)
}

// writeStructured renders v as JSON or YAML
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported structured format %q", format)
}
