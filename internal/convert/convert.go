// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs admonition conversion over a tree of Markdown files,
// mirroring the source layout into an output directory and skipping sources
// that are unchanged since their last recorded conversion.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/admonish/internal/admonition"
	"github.com/pdiddy/admonish/pkg/types"
)

// Converter transforms one document. Different backends (fenced-div
// Markdown, HTML preview, pandoc) implement this interface.
type Converter interface {
	Convert(doc string) (string, error)
}

// Fenced converts admonitions to Pandoc fenced divs.
type Fenced struct{}

// Convert never fails.
func (Fenced) Convert(doc string) (string, error) {
	return admonition.Convert(doc), nil
}

// Recorder persists conversion outcomes. manifest.Store implements it.
type Recorder interface {
	Lookup(ctx context.Context, path string) (types.DocumentRecord, bool, error)
	Record(ctx context.Context, rec types.DocumentRecord) error
}

// Source is a document found under the source tree.
type Source struct {
	// Path is the file path including the source root.
	Path string
	// Rel is Path relative to the source root.
	Rel string
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Discover walks root and returns the files whose extension matches one of
// exts (case-insensitive), sorted by relative path. skipDir, when non-empty,
// is not descended into.
func Discover(root string, exts []string, skipDir string) ([]Source, error) {
	if len(exts) == 0 {
		exts = types.DefaultConfig().Conversion.Extensions
	}
	skip := ""
	if skipDir != "" {
		abs, err := filepath.Abs(skipDir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", skipDir, err)
		}
		skip = abs
	}

	var sources []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skip != "" && path != root && resolvesTo(path, skip) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExt(path, exts) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sources = append(sources, Source{Path: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Rel < sources[j].Rel })
	return sources, nil
}

// resolvesTo reports whether path resolves to the absolute directory abs.
func resolvesTo(path, abs string) bool {
	p, err := filepath.Abs(path)
	return err == nil && p == abs
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// OutputPath returns where the conversion of rel is written.
func OutputPath(cfg types.ConversionConfig, rel string) string {
	if cfg.OutputExt != "" {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + cfg.OutputExt
	}
	return filepath.Join(cfg.OutputDir, rel)
}

// ConvertDocument converts one source document and writes the result. rec
// may be nil; without it a document is skipped whenever its output exists.
func ConvertDocument(ctx context.Context, c Converter, cfg types.ConversionConfig, rec Recorder, src Source, w io.Writer) types.ConversionStatus {
	outPath := OutputPath(cfg, src.Rel)
	backend := backendOf(cfg)

	data, err := os.ReadFile(src.Path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src.Rel, err)
		return types.ConversionFailed
	}
	sum := checksum(data)

	if !cfg.Force && unchanged(ctx, rec, src.Path, sum, backend, outPath) {
		fmt.Fprintf(w, "skipped: %s (unchanged)\n", src.Rel)
		return types.ConversionNone
	}

	doc := string(data)
	var stats admonition.Stats
	if admonition.HasAdmonitions(doc) {
		stats = admonition.Parse(doc).Stats()
	}

	record := types.DocumentRecord{
		Path:        src.Path,
		OutputPath:  outPath,
		SHA256:      sum,
		Admonitions: stats.Total,
		Types:       stats.ByType,
		Backend:     backend,
		Status:      types.ConversionDone,
		ConvertedAt: time.Now().UTC(),
	}

	if err := writeConverted(c, doc, outPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src.Rel, err)
		record.Status = types.ConversionFailed
		saveRecord(ctx, rec, record, w)
		return types.ConversionFailed
	}

	if stats.Total > 0 {
		fmt.Fprintf(w, "converted: %s (%d admonitions: %s)\n", src.Rel, stats.Total, strings.Join(stats.Types(), ", "))
	} else {
		fmt.Fprintf(w, "converted: %s (0 admonitions)\n", src.Rel)
	}
	saveRecord(ctx, rec, record, w)
	return types.ConversionDone
}

// ConvertTree converts every matching document under cfg.SourceDir, printing
// per-file status to w and returning a summary. It stops early when ctx is
// cancelled.
func ConvertTree(ctx context.Context, c Converter, cfg types.ConversionConfig, rec Recorder, w io.Writer) (BatchResult, error) {
	sources, err := Discover(cfg.SourceDir, cfg.Extensions, cfg.OutputDir)
	if err != nil {
		return BatchResult{}, err
	}
	return ConvertBatch(ctx, c, cfg, rec, sources, w)
}

// ConvertBatch converts the given sources in order.
func ConvertBatch(ctx context.Context, c Converter, cfg types.ConversionConfig, rec Recorder, sources []Source, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, src := range sources {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		switch ConvertDocument(ctx, c, cfg, rec, src, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func writeConverted(c Converter, doc, outPath string) error {
	out, err := c.Convert(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

// unchanged reports whether the previous conversion of path can be reused.
func unchanged(ctx context.Context, rec Recorder, path, sum string, backend types.ConversionBackend, outPath string) bool {
	if _, err := os.Stat(outPath); err != nil {
		return false
	}
	if rec == nil {
		return true
	}
	prev, ok, err := rec.Lookup(ctx, path)
	if err != nil || !ok {
		return false
	}
	return prev.Status == types.ConversionDone &&
		prev.SHA256 == sum &&
		prev.Backend == backend &&
		prev.OutputPath == outPath
}

func saveRecord(ctx context.Context, rec Recorder, record types.DocumentRecord, w io.Writer) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, record); err != nil {
		fmt.Fprintf(w, "warning: manifest update for %s failed: %v\n", record.Path, err)
	}
}

func backendOf(cfg types.ConversionConfig) types.ConversionBackend {
	if cfg.Backend == "" {
		return types.BackendMarkdown
	}
	return cfg.Backend
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
