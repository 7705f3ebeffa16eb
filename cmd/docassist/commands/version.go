// ABOUTME: Version command to display build information
// ABOUTME: Reports the build plus the vector store file format it reads and writes

package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/storage/sqlite"
)

var (
	versionInfo = VersionInfo{
		Version: "dev",
		Commit:  "none",
		Date:    "unknown",
	}
)

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// buildReport is what `version` prints in structured formats
type buildReport struct {
	VersionInfo `yaml:",inline"`
	GoVersion   string `json:"go_version" yaml:"go_version"`
	IndexFile   string `json:"index_file" yaml:"index_file"`
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the docassist build (version, commit, build date), the Go
runtime it was built with, and the file a saved vector store directory holds.

Stores saved by one build load in any other build that uses the same
index file, provided the embedding model is unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			report := buildReport{
				VersionInfo: versionInfo,
				GoVersion:   runtime.Version(),
				IndexFile:   sqlite.IndexFileName,
			}
			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, report)
			}

			w := cmd.OutOrStdout()
			_, _ = labelColor.Fprintf(w, "Document Assistant %s\n", report.Version)
			_, _ = fmt.Fprintf(w, "Commit: %s\n", report.Commit)
			_, _ = fmt.Fprintf(w, "Built:  %s\n", report.Date)
			_, _ = fmt.Fprintf(w, "Go:     %s\n", report.GoVersion)
			_, _ = fmt.Fprintf(w, "Store:  <dir>/%s\n", report.IndexFile)
			return nil
		},
	}

	return cmd
}
