// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/admonish/pkg/types"
)

// Export is the serialized form of the manifest.
type Export struct {
	Documents []types.DocumentRecord `json:"documents" yaml:"documents"`
	Summary   ExportSummary          `json:"summary" yaml:"summary"`
}

// ExportSummary aggregates admonition counts across all documents.
type ExportSummary struct {
	Documents   int            `json:"documents" yaml:"documents"`
	Admonitions int            `json:"admonitions" yaml:"admonitions"`
	Types       map[string]int `json:"types" yaml:"types"`
}

// ExportYAML writes the manifest to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	exp, err := s.export(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the manifest to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	exp, err := s.export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) export(ctx context.Context) (Export, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}

	exp := Export{
		Documents: records,
		Summary:   ExportSummary{Types: map[string]int{}},
	}
	if exp.Documents == nil {
		exp.Documents = []types.DocumentRecord{}
	}
	for _, r := range records {
		exp.Summary.Documents++
		exp.Summary.Admonitions += r.Admonitions
		for t, n := range r.Types {
			exp.Summary.Types[t] += n
		}
	}
	return exp, nil
}
