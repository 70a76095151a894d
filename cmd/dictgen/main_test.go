// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dictgen/internal/catalog"
	"github.com/pdiddy/dictgen/pkg/types"
)

const cliDoc = "# C Language Reference\n" +
	"## Keywords\n" +
	"### `auto`\n" +
	"_Description:_\n" +
	"Automatic storage.\n" +
	"## Operators\n" +
	"### `+`\n"

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "C_Dictionary.md")
	require.NoError(t, os.WriteFile(src, []byte(cliDoc), 0o644))
	outDir := filepath.Join(dir, "out")

	require.NoError(t, execute(t, "generate", "--source", src, "--out-dir", outDir, "--audit-out", "audit.yaml"))

	for _, name := range []string{"built-in-definitions.js", "c-dictionary.js", "audit.yaml"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestGenerateCommandMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "generate", "--source", filepath.Join(dir, "missing.md"), "--out-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.md")
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "C_Dictionary.md")
	require.NoError(t, os.WriteFile(src, []byte(cliDoc), 0o644))
	catDir := filepath.Join(dir, "catalog")

	require.NoError(t, execute(t, "catalog", "index", "--source", src, "--catalog-dir", catDir))
	_, err := os.Stat(filepath.Join(catDir, "export.yaml"))
	require.NoError(t, err)

	require.NoError(t, execute(t, "catalog", "export", "--catalog-dir", catDir, "--format", "json", "--category", "operator"))
	data, err := os.ReadFile(filepath.Join(catDir, "export.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"token": "+"`)
	assert.NotContains(t, string(data), `"token": "auto"`)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	require.NoError(t, execute(t, "catalog", "show", "--catalog-dir", catDir, "auto"))
	assert.Contains(t, out.String(), "auto (keyword)")
	assert.Contains(t, out.String(), "Automatic storage.")

	err = execute(t, "catalog", "show", "--catalog-dir", catDir, "register")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	err = execute(t, "catalog", "export", "--catalog-dir", catDir, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatLookupOutput(t *testing.T) {
	results := []types.Entry{
		{Name: "auto", Category: types.Keyword, Description: "Automatic storage.\nSecond line."},
		{Name: "printf", Category: types.Identifier, Description: strings.Repeat("x", 80)},
	}

	var buf bytes.Buffer
	require.NoError(t, formatLookupOutput(&buf, results, false))
	out := buf.String()
	assert.Contains(t, out, "Automatic storage. Second line.")
	assert.Contains(t, out, strings.Repeat("x", 53)+"...")
	assert.Contains(t, out, "2 results")

	buf.Reset()
	require.NoError(t, formatLookupOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatLookupOutput(&buf, results, true))
	var decoded []types.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, results, decoded)
}

func TestFormatLookupOutputTruncatesByCharacter(t *testing.T) {
	results := []types.Entry{
		{Name: "<=", Category: types.Operator, Description: strings.Repeat("≤", 60)},
	}

	var buf bytes.Buffer
	require.NoError(t, formatLookupOutput(&buf, results, false))
	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), strings.Repeat("≤", 53)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("≤", 54))
}

func TestFormatEntry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatEntry(&buf, types.Entry{
		Name: "goto", Category: types.Keyword, Description: "`goto` is a C keyword.", Synthesized: true,
	}))
	assert.Contains(t, buf.String(), "goto (keyword)")
	assert.NotContains(t, buf.String(), "Example:")
	assert.Contains(t, buf.String(), "description generated")
}

func TestIndexSource(t *testing.T) {
	ctx := context.Background()
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	src, err := indexSource(ctx, store, false, "C_Dictionary.md")
	require.NoError(t, err)
	assert.Equal(t, "C_Dictionary.md", src, "empty catalogue falls back to the default")

	_, err = store.Index(ctx, "docs/ref.md", map[string]types.Entry{
		"auto": {Name: "auto", Category: types.Keyword, Description: "Automatic storage."},
	}, &bytes.Buffer{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		explicit   bool
		configured string
		want       string
	}{
		{"default reuses last run", false, "C_Dictionary.md", "docs/ref.md"},
		{"explicit default wins", true, "C_Dictionary.md", "C_Dictionary.md"},
		{"configured source wins", false, "other.md", "other.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := indexSource(ctx, store, tt.explicit, tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
