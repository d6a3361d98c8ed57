// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package admonition rewrites Python-Markdown admonition blocks into Pandoc
// fenced divs.
//
// An admonition opens with a line starting with "!!! " followed by a type and
// an optional title; its body is the run of following lines that are empty or
// indented by four spaces:
//
//	!!! note "My title"
//	    Some text: This is the first paragraph.
//
//	    Second paragraph.
//
// Convert turns that block into:
//
//	::: {.admonition .note}
//	<p class="admonition-title">My title</p>
//
//	Some text: This is the first paragraph.
//
//	Second paragraph.
//	:::
//
// A missing title falls back to the capitalized type. An empty quoted title
// ("") suppresses the title paragraph. Admonitions do not nest.
package admonition

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// marker starts an admonition header line.
	marker = "!!! "
	// indent prefixes every non-empty body line.
	indent = "    "
	// fence closes a Pandoc fenced div.
	fence = ":::"
)

var (
	openerRe  = regexp.MustCompile(`(?m)^!!! `)
	newlineRe = regexp.MustCompile(`\r?\n`)
)

// Admonition is one parsed admonition block.
type Admonition struct {
	// Type is the first header token (e.g. "note", "warning").
	Type string `json:"type" yaml:"type"`

	// Title is the resolved title. Empty means no title paragraph.
	Title string `json:"title" yaml:"title"`

	// Body holds the body lines with the four-space indent removed.
	Body []string `json:"body" yaml:"body"`

	// Closed reports whether a following line ended the body. A block that
	// runs to the end of the document is not closed.
	Closed bool `json:"closed" yaml:"closed"`
}

// Segment is either a run of plain lines or a single admonition.
type Segment struct {
	Lines      []string
	Admonition *Admonition
}

// Document is the result of scanning a text for admonitions.
type Document struct {
	Segments []Segment
}

// HasAdmonitions reports whether any line of doc starts with "!!! ".
func HasAdmonitions(doc string) bool {
	return openerRe.MatchString(doc)
}

// Convert rewrites every admonition in doc into a Pandoc fenced div. A
// document without admonitions is returned unchanged; otherwise line endings
// are normalized to "\n".
func Convert(doc string) string {
	if !HasAdmonitions(doc) {
		return doc
	}
	return Parse(doc).Pandoc()
}

// Parse splits doc into lines and groups them into plain and admonition
// segments in a single forward pass.
func Parse(doc string) Document {
	var d Document
	var open *Admonition

	for _, line := range newlineRe.Split(doc, -1) {
		if open != nil {
			if line == "" || strings.HasPrefix(line, indent) {
				open.Body = append(open.Body, strings.TrimPrefix(line, indent))
				continue
			}
			// Dedent: the line ends the body and is classified below.
			open.Closed = true
			open = nil
		}

		if strings.HasPrefix(line, marker) {
			typ, title := parseHeader(line[len(marker):])
			open = &Admonition{Type: typ, Title: title}
			d.Segments = append(d.Segments, Segment{Admonition: open})
			continue
		}

		d.appendLine(line)
	}

	return d
}

func (d *Document) appendLine(line string) {
	if n := len(d.Segments); n > 0 && d.Segments[n-1].Admonition == nil {
		d.Segments[n-1].Lines = append(d.Segments[n-1].Lines, line)
		return
	}
	d.Segments = append(d.Segments, Segment{Lines: []string{line}})
}

// Pandoc renders the document with admonitions as fenced divs, joining lines
// with "\n".
func (d Document) Pandoc() string {
	var out []string
	for _, seg := range d.Segments {
		a := seg.Admonition
		if a == nil {
			out = append(out, seg.Lines...)
			continue
		}
		out = append(out, "::: {.admonition ."+a.Type+"}")
		if a.Title != "" {
			out = append(out, `<p class="admonition-title">`+a.Title+`</p>`, "")
		}
		out = append(out, a.Body...)
		out = append(out, fence)
		if a.Closed {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

// Admonitions returns the admonitions of d in document order.
func (d Document) Admonitions() []*Admonition {
	var list []*Admonition
	for _, seg := range d.Segments {
		if seg.Admonition != nil {
			list = append(list, seg.Admonition)
		}
	}
	return list
}

// parseHeader resolves the type and title from the text after the marker.
// The header is split once, at the first run of spaces.
func parseHeader(rest string) (typ, title string) {
	hdr := strings.TrimSpace(rest)

	i := strings.IndexByte(hdr, ' ')
	if i < 0 {
		return hdr, capitalize(hdr)
	}

	typ = hdr[:i]
	title = unquote(strings.TrimLeft(hdr[i:], " "))
	return typ, title
}

// unquote drops one leading and one trailing character when title starts and
// ends with a quote. The two quotes need not match: `"x'` unquotes to `x`.
func unquote(title string) string {
	if title == "" || !isQuote(title[0]) || !isQuote(title[len(title)-1]) {
		return title
	}
	if len(title) < 2 {
		return ""
	}
	return title[1 : len(title)-1]
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}

// capitalize upper-cases the first code point of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
