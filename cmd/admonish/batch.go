// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/admonish/internal/convert"
	"github.com/pdiddy/admonish/internal/manifest"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every Markdown file under a directory",
	Long: `Batch walks the source directory, converts each Markdown file, and writes
the result under the output directory with the same relative layout.

Conversions are recorded in a SQLite manifest; files whose content has not
changed since their last successful conversion are skipped. Use --force to
reconvert everything or --no-manifest to skip only files whose output exists.`,
	Args: cobra.NoArgs,
	PreRunE: bindFlags(map[string]string{
		"conversion.backend":    "backend",
		"conversion.source_dir": "src",
		"conversion.output_dir": "out",
		"conversion.extensions": "ext",
		"conversion.output_ext": "output-ext",
		"conversion.force":      "force",
		"manifest.dir":          "manifest-dir",
		"manifest.disabled":     "no-manifest",
		"pandoc.image":          "image",
		"pandoc.to":             "to",
		"pandoc.standalone":     "standalone",
	}),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	cfg.Conversion.OutputExt = outputExt(cfg)

	var rec convert.Recorder
	if !cfg.Manifest.Disabled {
		store, err := manifest.Open(cfg.Manifest)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	result, err := convert.ConvertTree(cmd.Context(), conv, cfg.Conversion, rec, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("backend", "markdown", "output backend: markdown, html, or pandoc")
	batchCmd.Flags().String("src", "docs", "source directory to convert")
	batchCmd.Flags().String("out", "build/docs", "output directory")
	batchCmd.Flags().StringSlice("ext", []string{".md"}, "source file extensions to convert")
	batchCmd.Flags().String("output-ext", "", "output file extension (default depends on backend)")
	batchCmd.Flags().Bool("force", false, "reconvert files even when unchanged")
	batchCmd.Flags().String("manifest-dir", ".admonish", "directory holding the conversion manifest")
	batchCmd.Flags().Bool("no-manifest", false, "do not record conversions in the manifest")
	addPandocFlags(batchCmd)

	rootCmd.AddCommand(batchCmd)
}
