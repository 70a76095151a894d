// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings used when the source document is fetched over HTTP.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dictgen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on 429 and 5xx responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerateConfig holds settings for the generate stage.
type GenerateConfig struct {
	HTTPConfig `yaml:",inline"`

	// Source is the path or http(s) URL of the Markdown dictionary
	// (default "C_Dictionary.md").
	Source string `json:"source" yaml:"source"`

	// OutDir is the directory the artifacts are written to
	// (default "c-token-analyzer").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// BuiltinsOut is the file name of the flat definitions array
	// (default "built-in-definitions.js").
	BuiltinsOut string `json:"builtins_out" yaml:"builtins_out"`

	// DictionaryOut is the file name of the grouped dictionary
	// (default "c-dictionary.js").
	DictionaryOut string `json:"dictionary_out" yaml:"dictionary_out"`

	// AuditOut is the file name of the synthesized-description report.
	// Empty disables the report.
	AuditOut string `json:"audit_out,omitempty" yaml:"audit_out,omitempty"`

	// Title is the dictionary title used when the document has no
	// top-level heading (default "C Language Reference").
	Title string `json:"title" yaml:"title"`
}

// CatalogConfig holds settings for the SQLite entry catalogue.
type CatalogConfig struct {
	// CatalogDir is the directory holding the database and exports
	// (default "catalog").
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of lookup results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
