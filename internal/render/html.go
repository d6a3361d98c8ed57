// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns documents with admonitions into final output formats:
// an in-process HTML preview built on goldmark, and pandoc run inside a
// container.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/pdiddy/admonish/internal/admonition"
)

// HTML renders Markdown to HTML with each admonition wrapped in
// <div class="admonition TYPE">. Plain text and admonition bodies are
// rendered separately, so reference-style links cannot cross a block
// boundary.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML returns a renderer with GFM enabled and raw HTML passed through.
func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Render writes the HTML for doc to w.
func (h *HTML) Render(doc string, w io.Writer) error {
	if !admonition.HasAdmonitions(doc) {
		return h.markdown(doc, w)
	}

	for _, seg := range admonition.Parse(doc).Segments {
		a := seg.Admonition
		if a == nil {
			if err := h.markdown(strings.Join(seg.Lines, "\n"), w); err != nil {
				return err
			}
			continue
		}
		if err := h.admonition(a, w); err != nil {
			return err
		}
	}
	return nil
}

// Convert returns the HTML for doc as a string.
func (h *HTML) Convert(doc string) (string, error) {
	var buf bytes.Buffer
	if err := h.Render(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (h *HTML) admonition(a *admonition.Admonition, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "<div class=\"admonition %s\">\n", html.EscapeString(a.Type)); err != nil {
		return err
	}
	if a.Title != "" {
		if _, err := fmt.Fprintf(w, "<p class=\"admonition-title\">%s</p>\n", a.Title); err != nil {
			return err
		}
	}
	if err := h.markdown(strings.Join(a.Body, "\n"), w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}

func (h *HTML) markdown(src string, w io.Writer) error {
	if err := h.md.Convert([]byte(src), w); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	return nil
}
