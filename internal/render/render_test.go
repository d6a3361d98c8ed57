// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/admonish/pkg/types"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains []string
		excludes []string
	}{
		{
			name:     "plain markdown",
			doc:      "# Title\n\nSome *text*.",
			contains: []string{`<h1 id="title">Title</h1>`, "<p>Some <em>text</em>.</p>"},
			excludes: []string{"admonition"},
		},
		{
			name: "titled admonition",
			doc:  "Intro.\n\n!!! note \"My title\"\n    First paragraph.\n\n    Second paragraph.\n",
			contains: []string{
				"<p>Intro.</p>",
				`<div class="admonition note">`,
				`<p class="admonition-title">My title</p>`,
				"<p>First paragraph.</p>",
				"<p>Second paragraph.</p>",
				"</div>",
			},
		},
		{
			name:     "empty title has no title paragraph",
			doc:      "!!! tip \"\"\n    Body.",
			contains: []string{`<div class="admonition tip">`, "<p>Body.</p>"},
			excludes: []string{"admonition-title"},
		},
		{
			name:     "type is escaped",
			doc:      "!!! a<b\n    Body.",
			contains: []string{`<div class="admonition a&lt;b">`},
		},
	}

	h := NewHTML()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Convert(tt.doc)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestHTML_BlockOrder(t *testing.T) {
	got, err := NewHTML().Convert("Before.\n!!! warning\n    Inside.\nAfter.")
	require.NoError(t, err)

	before := strings.Index(got, "Before.")
	inside := strings.Index(got, "Inside.")
	after := strings.Index(got, "After.")
	assert.True(t, before < inside && inside < after, "segments out of order: %q", got)
}

// fakeRuntime implements container.Runtime for testing.
type fakeRuntime struct {
	imageErr error
	runErr   error
	gotImage string
	gotArgs  []string
	gotInput string
}

func (f *fakeRuntime) Name() string { return "fake" }
func (f *fakeRuntime) Available() bool { return true }
func (f *fakeRuntime) ImageExists(string) error { return f.imageErr }

func (f *fakeRuntime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	if f.runErr != nil {
		return f.runErr
	}
	data, _ := io.ReadAll(stdin)
	f.gotImage, f.gotArgs, f.gotInput = image, args, string(data)
	_, err := io.WriteString(stdout, "<div>rendered</div>\n")
	return err
}

func TestNewPandoc_MissingImage(t *testing.T) {
	_, err := NewPandoc(&fakeRuntime{imageErr: errors.New("no such image")}, types.PandocConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandoc image not available in fake")
}

func TestPandoc_Convert(t *testing.T) {
	rt := &fakeRuntime{}
	p, err := NewPandoc(rt, types.PandocConfig{Standalone: true})
	require.NoError(t, err)

	out, err := p.Convert("!!! note\n    Body.")
	require.NoError(t, err)

	assert.Equal(t, "<div>rendered</div>\n", out)
	assert.Equal(t, "pandoc/core:latest", rt.gotImage)
	assert.Equal(t, []string{"--from", "markdown", "--to", "html5", "--standalone"}, rt.gotArgs)
	assert.Equal(t, "::: {.admonition .note}\n<p class=\"admonition-title\">Note</p>\n\nBody.\n:::", rt.gotInput)
}

func TestPandoc_ConvertFailure(t *testing.T) {
	p, err := NewPandoc(&fakeRuntime{runErr: errors.New("exit status 64")}, types.PandocConfig{To: "latex"})
	require.NoError(t, err)

	_, err = p.Convert("text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering with pandoc")
}
