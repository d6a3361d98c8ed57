// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdiddy/admonish/internal/admonition"
	"github.com/pdiddy/admonish/internal/container"
	"github.com/pdiddy/admonish/pkg/types"
)

// Pandoc converts admonitions to fenced divs and pipes the result through a
// pandoc container image. The image's entrypoint must be pandoc.
type Pandoc struct {
	runtime container.Runtime
	cfg     types.PandocConfig
}

// NewPandoc verifies that cfg.Image exists in rt and returns a renderer.
// Empty fields of cfg take their defaults.
func NewPandoc(rt container.Runtime, cfg types.PandocConfig) (*Pandoc, error) {
	def := types.DefaultConfig().Pandoc
	if cfg.Image == "" {
		cfg.Image = def.Image
	}
	if cfg.To == "" {
		cfg.To = def.To
	}
	if err := rt.ImageExists(cfg.Image); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &Pandoc{runtime: rt, cfg: cfg}, nil
}

// Args returns the pandoc command-line arguments used for each run.
func (p *Pandoc) Args() []string {
	args := []string{"--from", "markdown", "--to", p.cfg.To}
	if p.cfg.Standalone {
		args = append(args, "--standalone")
	}
	return args
}

// Convert renders doc with pandoc and returns its output.
func (p *Pandoc) Convert(doc string) (string, error) {
	var out bytes.Buffer
	in := strings.NewReader(admonition.Convert(doc))
	if err := p.runtime.Run(p.cfg.Image, p.Args(), in, &out); err != nil {
		return "", fmt.Errorf("rendering with pandoc: %w", err)
	}
	return out.String(), nil
}
