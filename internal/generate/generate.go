// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate runs the dictionary pipeline: load the Markdown source,
// scan and merge its entries, and write the JavaScript artifacts.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dictgen/internal/merge"
	"github.com/pdiddy/dictgen/internal/render"
	"github.com/pdiddy/dictgen/internal/scan"
	"github.com/pdiddy/dictgen/internal/source"
	"github.com/pdiddy/dictgen/pkg/types"
)

const (
	DefaultSource        = render.DefaultSource
	DefaultOutDir        = "c-token-analyzer"
	DefaultBuiltinsOut   = "built-in-definitions.js"
	DefaultDictionaryOut = "c-dictionary.js"
	DefaultTitle         = "C Language Reference"
)

// Audit lists the entries whose descriptions were synthesized.
type Audit struct {
	Source      string   `json:"source" yaml:"source"`
	Count       int      `json:"count" yaml:"count"`
	Synthesized []string `json:"synthesized" yaml:"synthesized"`
}

// Artifacts holds the rendered outputs for one source document.
type Artifacts struct {
	Entries     map[string]types.Entry
	Definitions string
	Dictionary  string
	Audit       Audit
}

// Summary reports what a Run wrote.
type Summary struct {
	// Paths lists the files written, in write order.
	Paths []string

	// Counts holds the number of merged entries per category.
	Counts map[types.Category]int

	// Synthesized lists the names whose description was generated.
	Synthesized []string
}

// Total returns the number of merged entries.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// WithDefaults returns cfg with empty fields set to their defaults.
func WithDefaults(cfg types.GenerateConfig) types.GenerateConfig {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.BuiltinsOut == "" {
		cfg.BuiltinsOut = DefaultBuiltinsOut
	}
	if cfg.DictionaryOut == "" {
		cfg.DictionaryOut = DefaultDictionaryOut
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return cfg
}

// Build turns document text into rendered artifacts. It performs no I/O
// and returns identical output for identical input.
func Build(text string, cfg types.GenerateConfig) Artifacts {
	cfg = WithDefaults(cfg)

	doc := scan.Scan(text)
	entries := merge.Merge(doc.Entries)

	title := doc.Title
	if title == "" {
		title = cfg.Title
	}

	synthesized := merge.Synthesized(entries)
	return Artifacts{
		Entries:     entries,
		Definitions: render.Definitions(entries, cfg.Source),
		Dictionary:  render.Dictionary(entries, cfg.Source, title),
		Audit: Audit{
			Source:      cfg.Source,
			Count:       len(synthesized),
			Synthesized: synthesized,
		},
	}
}

// Parse loads the source document and returns its merged entries.
func Parse(ctx context.Context, cfg types.GenerateConfig) (map[string]types.Entry, error) {
	cfg = WithDefaults(cfg)
	text, err := source.Load(ctx, cfg.Source, cfg.HTTPConfig)
	if err != nil {
		return nil, err
	}
	return merge.Merge(scan.Scan(text).Entries), nil
}

// output is one artifact file name and its contents.
type output struct {
	name string
	data []byte
}

// Run loads cfg.Source, builds the artifacts and writes them to
// cfg.OutDir, printing each path and a per-category summary to w. Any
// I/O failure aborts the run; files already written are left in place.
func Run(ctx context.Context, cfg types.GenerateConfig, w io.Writer) (Summary, error) {
	cfg = WithDefaults(cfg)

	text, err := source.Load(ctx, cfg.Source, cfg.HTTPConfig)
	if err != nil {
		return Summary{}, err
	}

	art := Build(text, cfg)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", cfg.OutDir, err)
	}

	summary := Summary{
		Counts:      merge.CountByCategory(art.Entries),
		Synthesized: art.Audit.Synthesized,
	}

	outputs := []output{
		{cfg.BuiltinsOut, []byte(art.Definitions)},
		{cfg.DictionaryOut, []byte(art.Dictionary)},
	}
	if cfg.AuditOut != "" {
		data, err := yaml.Marshal(art.Audit)
		if err != nil {
			return summary, fmt.Errorf("marshaling audit: %w", err)
		}
		outputs = append(outputs, output{cfg.AuditOut, data})
	}

	for _, out := range outputs {
		path := filepath.Join(cfg.OutDir, out.name)
		if err := os.WriteFile(path, out.data, 0o644); err != nil {
			return summary, fmt.Errorf("writing %s: %w", path, err)
		}
		summary.Paths = append(summary.Paths, path)
		fmt.Fprintf(w, "Wrote %s\n", path)
	}

	fmt.Fprintf(w, "\nparsed %d entries: keyword: %d, operator: %d, identifier: %d, synthesized: %d\n",
		summary.Total(),
		summary.Counts[types.Keyword], summary.Counts[types.Operator], summary.Counts[types.Identifier],
		len(summary.Synthesized))

	return summary, nil
}
