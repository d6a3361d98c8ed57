// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the admonish CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/admonish/internal/admonition"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd filters a single document and hosts the batch subcommands.
var rootCmd = &cobra.Command{
	Use:   "admonish [path]",
	Short: "Convert Python-Markdown admonitions to Pandoc fenced divs",
	Long: `admonish rewrites Python-Markdown admonition blocks ("!!! note ...") into
Pandoc fenced divs ("::: {.admonition .note}").

With a path argument it converts that file; without one it reads standard
input. The result is written to standard output. Subcommands convert whole
trees, render HTML previews, run pandoc in a container, and inspect the
conversion manifest.

A path that matches a subcommand name runs the subcommand instead. Prefix
such a file with its directory, as in "admonish ./version".

Filtering never reads admonish.yaml; only the subcommands load configuration.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return filter(args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./admonish.yaml or ~/.config/admonish/config.yaml)")
}

// filter converts the document named by args[0], or stdin when args is
// empty, and writes it to w followed by a newline.
func filter(args []string, stdin io.Reader, w io.Writer) error {
	doc, err := readDocument(args, stdin)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, admonition.Convert(doc))
	return err
}

// readDocument returns the contents of args[0] when present, else all of stdin.
func readDocument(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
