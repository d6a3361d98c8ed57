// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/admonish/internal/container"
	"github.com/pdiddy/admonish/internal/render"
)

var htmlCmd = &cobra.Command{
	Use:   "html [path]",
	Short: "Render a document to an HTML preview",
	Long: `HTML renders a Markdown document with goldmark, wrapping each admonition
in <div class="admonition TYPE"> with an optional admonition-title paragraph.
No external tools are needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return render.NewHTML().Render(doc, cmd.OutOrStdout())
	},
}

var pandocCmd = &cobra.Command{
	Use:   "pandoc [path]",
	Short: "Convert a document and render it with pandoc in a container",
	Long: `Pandoc converts admonitions to fenced divs and pipes the result through a
pandoc container image using docker or podman. The output format is chosen
with --to.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: bindFlags(map[string]string{
		"pandoc.image":      "image",
		"pandoc.to":         "to",
		"pandoc.standalone": "standalone",
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := readDocument(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		rt, err := container.DetectRuntime()
		if err != nil {
			return err
		}
		p, err := render.NewPandoc(rt, cfg.Pandoc)
		if err != nil {
			return err
		}

		out, err := p.Convert(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func addPandocFlags(cmd *cobra.Command) {
	cmd.Flags().String("image", "pandoc/core:latest", "pandoc container image")
	cmd.Flags().String("to", "html5", "pandoc output format")
	cmd.Flags().Bool("standalone", false, "produce a complete document")
}

func init() {
	addPandocFlags(pandocCmd)

	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(pandocCmd)
}
