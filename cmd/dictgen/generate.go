// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/dictgen/internal/generate"
	"github.com/pdiddy/dictgen/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the JavaScript dictionary artifacts",
	Long: `Generate scans the Markdown reference, merges entries that appear under
more than one section, and writes two modules: a flat definitions array and
a dictionary grouped into Keywords, Operators, and Standard Library
Identifiers. Entries without a description get a generated one; pass
--audit-out to list them.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, err := generate.Run(context.Background(), generateConfig(), os.Stdout)
	return err
}

// generateConfig assembles the stage config from flags, config file, and
// environment, in viper's precedence order.
func generateConfig() types.GenerateConfig {
	return types.GenerateConfig{
		HTTPConfig:    httpConfig(),
		Source:        viper.GetString("source"),
		OutDir:        viper.GetString("out-dir"),
		BuiltinsOut:   viper.GetString("builtins-out"),
		DictionaryOut: viper.GetString("dictionary-out"),
		AuditOut:      viper.GetString("audit-out"),
		Title:         viper.GetString("title"),
	}
}

func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:    viper.GetDuration("timeout"),
		UserAgent:  viper.GetString("user-agent"),
		MaxRetries: viper.GetInt("max-retries"),
	}
}

// addSourceFlags registers the flags that locate the source document.
func addSourceFlags(fs *pflag.FlagSet) {
	fs.String("source", generate.DefaultSource, "path or http(s) URL of the Markdown reference")
	fs.Duration("timeout", 0, "HTTP timeout when --source is a URL (0 = 30s)")
	fs.String("user-agent", "dictgen/"+version, "User-Agent header when --source is a URL")
	fs.Int("max-retries", 3, "retries on HTTP 429 and 5xx when --source is a URL")
}

func init() {
	addSourceFlags(generateCmd.Flags())
	generateCmd.Flags().String("out-dir", generate.DefaultOutDir, "directory to write the artifacts to")
	generateCmd.Flags().String("builtins-out", generate.DefaultBuiltinsOut, "file name of the flat definitions array")
	generateCmd.Flags().String("dictionary-out", generate.DefaultDictionaryOut, "file name of the grouped dictionary")
	generateCmd.Flags().String("audit-out", "", "file name of the synthesized-description report (empty = none)")
	generateCmd.Flags().String("title", generate.DefaultTitle, "dictionary title when the document has no top-level heading")

	rootCmd.AddCommand(generateCmd)
}
