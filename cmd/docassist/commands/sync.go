// ABOUTME: Sync commands for Charm cloud synchronization of vector stores
// ABOUTME: Provides status, push, pull, list, delete, wipe, and keys management
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/charm"
)

var (
	syncDir string
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization of saved vector stores with Charm cloud.

Vector stores are saved locally as a single index file. Pushing
uploads that file to your Charm account under a name, and pulling
downloads it on another device linked to the same account, so the
documents only need to be processed once.`,
	}

	cmd.PersistentFlags().StringVar(&syncDir, "dir", "", "Vector store directory (default from config: document_vectors)")

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncPullCmd())
	cmd.AddCommand(newSyncListCmd())
	cmd.AddCommand(newSyncDeleteCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())

	return cmd
}

// openCharm loads configuration and connects to Charm
func openCharm() (*charm.Client, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}

	client, err := charm.NewClient(charm.ConfigFrom(cfg))
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return client, dirOrDefault(syncDir, cfg), nil
}

// syncName picks the explicit name argument, or derives one from dir
func syncName(args []string, dir string) string {
	if len(args) > 0 {
		return args[0]
	}
	return charm.DefaultName(dir)
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintln(out, "Run 'docassist sync keys' to check your SSH keys")
				return nil
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", client.Host())

			return nil
		},
	}
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [name]",
		Short: "Upload the saved vector store",
		Long: `Upload the saved vector store to Charm cloud.

The name defaults to the base name of the vector store directory.
An existing synced store with the same name is replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, dir, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			name := syncName(args, dir)
			manifest, err := client.PushIndex(cmd.Context(), name, dir)
			if err != nil {
				return err
			}

			_, _ = okColor.Fprintf(cmd.OutOrStdout(), "Pushed %s as %q (%d chunks from %d documents)\n",
				dir, name, manifest.ChunkCount, len(manifest.Documents))
			return nil
		},
	}
}

func newSyncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull [name]",
		Short: "Download a synced vector store",
		Long: `Download a synced vector store into the vector store directory.

The download is validated before it replaces any existing index.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, dir, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			name := syncName(args, dir)
			manifest, err := client.PullIndex(cmd.Context(), name, dir)
			if err != nil {
				return err
			}

			_, _ = okColor.Fprintf(cmd.OutOrStdout(), "Pulled %q into %s (%d chunks, %s)\n",
				name, dir, manifest.ChunkCount, manifest.EmbeddingModel)
			return nil
		},
	}
}

func newSyncListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List synced vector stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			indexes, err := client.ListIndexes()
			if err != nil {
				return err
			}

			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, indexes)
			}
			if len(indexes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No synced vector stores")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "NAME\tCHUNKS\tDOCS\tMODEL\tCREATED\n")
			fmt.Fprintf(w, "----\t------\t----\t-----\t-------\n")
			for _, idx := range indexes {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
					truncate(idx.Name, 30),
					idx.Manifest.ChunkCount,
					len(idx.Manifest.Documents),
					truncate(idx.Manifest.EmbeddingModel, 30),
					formatTime(idx.Manifest.CreatedAt))
			}
			return w.Flush()
		},
	}
}

func newSyncDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a synced vector store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.DeleteIndex(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	}
}

func newSyncWipeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all local sync data (nuclear option)",
		Long: `Completely wipe all local Charm data.

WARNING: This deletes all locally cached sync data. Your cloud data
remains intact and will be re-synced on next access. Saved vector
store directories are not touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "This will wipe ALL local sync data!")
				fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
				return nil
			}

			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Reset(); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Local data wiped successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the wipe operation")

	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List authorized SSH keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			keys, err := client.GetAuthorizedKeys()
			if err != nil {
				return fmt.Errorf("failed to get authorized keys: %w", err)
			}

			if keys == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No authorized keys found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Authorized SSH keys:")
			fmt.Fprintln(cmd.OutOrStdout(), keys)

			return nil
		},
	}
}
