// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dictgen/pkg/types"
)

// ExportEntry is the serialized form of a catalogue entry.
type ExportEntry struct {
	Token       string `json:"token" yaml:"token"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
	Synthesized bool   `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes the catalogue (or the subset matching opts) to
// export.yaml in the catalogue directory and returns the path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the catalogue (or the subset matching opts) to
// export.json in the catalogue directory and returns the path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Lookup(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, e := range results {
		entries[i] = toExport(e)
	}
	return entries, nil
}

func toExport(e types.Entry) ExportEntry {
	return ExportEntry{
		Token:       e.Name,
		Type:        string(e.Category),
		Description: e.Description,
		Example:     e.Example,
		Synthesized: e.Synthesized,
	}
}
