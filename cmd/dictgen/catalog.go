// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dictgen/internal/catalog"
	"github.com/pdiddy/dictgen/internal/generate"
	"github.com/pdiddy/dictgen/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the entry catalogue (index, lookup, show, export)",
	Long: `Catalog keeps the merged dictionary entries in a local SQLite database
so they can be searched and exported without re-reading the source.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Parse the source document and load its entries into the catalogue",
	Long: `Index parses the Markdown reference with the same rules as generate and
replaces the catalogue contents with the merged entries. Entries removed
from the source are removed from the catalogue. An export.yaml is written
after each successful run.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	src, err := indexSource(ctx, store, cmd.Flags().Changed("source"), viper.GetString("source"))
	if err != nil {
		return err
	}
	cfg := types.GenerateConfig{
		HTTPConfig: httpConfig(),
		Source:     src,
	}
	entries, err := generate.Parse(ctx, cfg)
	if err != nil {
		return err
	}

	if _, err := store.Index(ctx, generate.WithDefaults(cfg).Source, entries, os.Stdout); err != nil {
		return err
	}

	path, err := store.ExportYAML(ctx, catalog.QueryOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: export.yaml write failed: %v\n", err)
		return nil
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// indexSource picks the document to index. An explicit --source, config
// key or DICTGEN_SOURCE wins; otherwise the catalogue re-reads the source
// of its last run, falling back to the default document.
func indexSource(ctx context.Context, store *catalog.Store, explicit bool, configured string) (string, error) {
	if explicit || (configured != "" && configured != generate.DefaultSource) {
		return configured, nil
	}
	last, err := store.LastSource(ctx)
	if err != nil {
		return "", err
	}
	if last != "" {
		return last, nil
	}
	return configured, nil
}

// --- lookup subcommand ---

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Search the catalogue by name or description",
	Long: `Lookup searches entry names and descriptions. Exact name matches rank
first, then names starting with the query. Use --category to restrict the
search to one section.`,
	RunE: runCatalogLookup,
}

func runCatalogLookup(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Lookup(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLookupOutput(os.Stdout, results, jsonOutput)
}

func formatLookupOutput(w io.Writer, results []types.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-10s  %s\n", "Token", "Type", "Description")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, e := range results {
		desc := strings.ReplaceAll(e.Description, "\n", " ")
		if utf8.RuneCountInString(desc) > 56 {
			desc = string([]rune(desc)[:53]) + "..."
		}
		fmt.Fprintf(w, "%-20s  %-10s  %s\n", e.Name, e.Category, desc)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one catalogue entry by exact name",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return formatEntry(cmd.OutOrStdout(), e)
}

func formatEntry(w io.Writer, e types.Entry) error {
	fmt.Fprintf(w, "%s (%s)\n\n%s\n", e.Name, e.Category, e.Description)
	if e.Example != "" {
		fmt.Fprintf(w, "\nExample:\n%s\n", e.Example)
	}
	if e.Synthesized {
		fmt.Fprintln(w, "\n(description generated, not present in the source)")
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalogue to YAML or JSON",
	Long: `Export writes the catalogue (or a filtered subset) to export.yaml or
export.json in the catalogue directory.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		CatalogDir: viper.GetString("catalog-dir"),
		MaxResults: viper.GetInt("max-results"),
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (catalog.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	categoryFlag, _ := cmd.Flags().GetString("category")
	category, err := types.ParseCategory(categoryFlag)
	if err != nil {
		return catalog.QueryOptions{}, err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Category:   category,
		MaxResults: limit,
	}, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding the catalogue database and exports")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of lookup results")

	// Index flags.
	addSourceFlags(catalogIndexCmd.Flags())

	// Lookup flags.
	catalogLookupCmd.Flags().String("query", "", "search text (defaults to the positional arguments)")
	catalogLookupCmd.Flags().String("category", "", "filter by category: keyword, operator, identifier")
	catalogLookupCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogLookupCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "search filter for partial export")
	catalogExportCmd.Flags().String("category", "", "filter by category for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogLookupCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
