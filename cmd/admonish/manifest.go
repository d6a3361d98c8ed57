// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/admonish/internal/manifest"
	"github.com/pdiddy/admonish/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the conversion manifest (list, export, forget)",
	Long: `Manifest reads the SQLite database that batch conversions record into.
Use subcommands to list converted documents, export the manifest, or forget
documents whose sources were removed.`,
	PersistentPreRunE: bindFlags(map[string]string{
		"manifest.dir": "manifest-dir",
	}),
}

// --- list subcommand ---

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List converted documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openManifest()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		return formatList(cmd.OutOrStdout(), records)
	},
}

func formatList(w io.Writer, records []types.DocumentRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No documents recorded.")
		return err
	}

	fmt.Fprintf(w, "%-40s  %-9s  %-8s  %-5s  %s\n", "Path", "Status", "Backend", "Count", "Converted")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range records {
		path := r.Path
		if len(path) > 40 {
			path = "..." + path[len(path)-37:]
		}
		fmt.Fprintf(w, "%-40s  %-9s  %-8s  %-5d  %s\n",
			path, r.Status, r.Backend, r.Admonitions, r.ConvertedAt.Format("2006-01-02 15:04"))
	}

	_, err := fmt.Fprintf(w, "\n%d documents\n", len(records))
	return err
}

// --- export subcommand ---

var manifestExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the manifest to YAML or JSON",
	Long: `Export writes every manifest record plus per-type admonition totals to
standard output, or to the file named by --output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		store, err := openManifest()
		if err != nil {
			return err
		}
		defer store.Close()

		w := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		switch format {
		case "yaml", "":
			err = store.ExportYAML(cmd.Context(), w)
		case "json":
			err = store.ExportJSON(cmd.Context(), w)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outPath)
		}
		return nil
	},
}

// --- forget subcommand ---

var manifestForgetCmd = &cobra.Command{
	Use:   "forget [paths...]",
	Short: "Remove documents from the manifest",
	Long: `Forget deletes manifest records for the given source paths. With
--missing it deletes every record whose source file no longer exists, which
prunes entries left behind by deleted or renamed documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		missing, _ := cmd.Flags().GetBool("missing")
		if len(args) == 0 && !missing {
			return fmt.Errorf("source path or --missing required")
		}

		store, err := openManifest()
		if err != nil {
			return err
		}
		defer store.Close()

		if missing {
			gone, err := missingSources(cmd.Context(), store)
			if err != nil {
				return err
			}
			args = append(args, gone...)
		}
		return forgetPaths(cmd.Context(), store, args, cmd.OutOrStdout())
	},
}

// missingSources returns the recorded paths whose source file is gone.
func missingSources(ctx context.Context, store *manifest.Store) ([]string, error) {
	records, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	var gone []string
	for _, r := range records {
		if _, err := os.Stat(r.Path); errors.Is(err, fs.ErrNotExist) {
			gone = append(gone, r.Path)
		}
	}
	return gone, nil
}

func forgetPaths(ctx context.Context, store *manifest.Store, paths []string, w io.Writer) error {
	for _, p := range paths {
		if err := store.Forget(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(w, "forgot: %s\n", p)
	}
	_, err := fmt.Fprintf(w, "\n%d documents removed\n", len(paths))
	return err
}

func openManifest() (*manifest.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return manifest.Open(cfg.Manifest)
}

func init() {
	manifestCmd.PersistentFlags().String("manifest-dir", ".admonish", "directory holding the conversion manifest")

	manifestExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	manifestExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	manifestForgetCmd.Flags().Bool("missing", false, "forget every document whose source file no longer exists")

	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestExportCmd)
	manifestCmd.AddCommand(manifestForgetCmd)

	rootCmd.AddCommand(manifestCmd)
}
