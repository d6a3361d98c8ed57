// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/admonish/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.ManifestConfig{Dir: filepath.Join(t.TempDir(), ".admonish")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(path string) types.DocumentRecord {
	return types.DocumentRecord{
		Path:        path,
		OutputPath:  filepath.Join("build", path),
		SHA256:      "abc123",
		Admonitions: 3,
		Types:       map[string]int{"note": 2, "tip": 1},
		Backend:     types.BackendMarkdown,
		Status:      types.ConversionDone,
		ConvertedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "manifest")
	s, err := Open(types.ManifestConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, filepath.Join(dir, dbFile))
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(types.ManifestConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, sampleRecord("docs/a.md")))
	require.NoError(t, s.Close())

	s, err = Open(types.ManifestConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Lookup(ctx, "docs/a.md")
	require.NoError(t, err)
	assert.True(t, ok, "record should survive reopening")
}

func TestLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, ok, err := s.Lookup(ctx, "docs/missing.md")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleRecord("docs/a.md")
	require.NoError(t, s.Record(ctx, want))

	got, ok, err := s.Lookup(ctx, "docs/a.md")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.OutputPath, got.OutputPath)
	assert.Equal(t, want.SHA256, got.SHA256)
	assert.Equal(t, want.Admonitions, got.Admonitions)
	assert.Equal(t, want.Types, got.Types)
	assert.Equal(t, want.Backend, got.Backend)
	assert.Equal(t, want.Status, got.Status)
	assert.True(t, want.ConvertedAt.Equal(got.ConvertedAt))
}

func TestRecord_Upsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, sampleRecord("docs/a.md")))

	updated := sampleRecord("docs/a.md")
	updated.SHA256 = "def456"
	updated.Admonitions = 0
	updated.Types = nil
	require.NoError(t, s.Record(ctx, updated))

	got, ok, err := s.Lookup(ctx, "docs/a.md")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "def456", got.SHA256)
	assert.Equal(t, 0, got.Admonitions)
	assert.Empty(t, got.Types)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecord_DefaultsConvertedAt(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := sampleRecord("docs/a.md")
	rec.ConvertedAt = time.Time{}
	require.NoError(t, s.Record(ctx, rec))

	got, _, err := s.Lookup(ctx, "docs/a.md")
	require.NoError(t, err)
	assert.False(t, got.ConvertedAt.IsZero())
}

func TestListAndForget(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, p := range []string{"docs/c.md", "docs/a.md", "docs/b.md"} {
		require.NoError(t, s.Record(ctx, sampleRecord(p)))
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "docs/a.md", all[0].Path)
	assert.Equal(t, "docs/c.md", all[2].Path)

	require.NoError(t, s.Forget(ctx, "docs/b.md"))
	require.NoError(t, s.Forget(ctx, "docs/unknown.md"))

	all, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, sampleRecord("docs/a.md")))
	other := sampleRecord("docs/b.md")
	other.Admonitions = 1
	other.Types = map[string]int{"warning": 1}
	require.NoError(t, s.Record(ctx, other))

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.ExportYAML(ctx, &buf))

		var exp Export
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &exp))
		assert.Len(t, exp.Documents, 2)
		assert.Equal(t, 2, exp.Summary.Documents)
		assert.Equal(t, 4, exp.Summary.Admonitions)
		assert.Equal(t, map[string]int{"note": 2, "tip": 1, "warning": 1}, exp.Summary.Types)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.ExportJSON(ctx, &buf))

		var exp Export
		require.NoError(t, json.Unmarshal(buf.Bytes(), &exp))
		assert.Len(t, exp.Documents, 2)
		assert.Equal(t, "docs/a.md", exp.Documents[0].Path)
	})
}

func TestExport_Empty(t *testing.T) {
	s := testStore(t)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(context.Background(), &buf))
	assert.Contains(t, buf.String(), `"documents": []`)
}
