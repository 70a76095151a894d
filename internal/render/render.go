// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes merged dictionary entries into the two
// JavaScript modules consumed by the token analyzer.
package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/dictgen/pkg/types"
)

// DefaultSource is the document name used in the generated header when
// no source is given.
const DefaultSource = "C_Dictionary.md"

// escaper applies the single-quoted JavaScript string rules. Line
// terminators of any style become a single \n escape. U+2028 and U+2029
// end a string literal in engines older than ES2019.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Escape returns s escaped for embedding in a single-quoted JavaScript
// string literal.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Sorted returns the entries ordered case-insensitively by name. Names
// that fold to the same key are ordered by their raw form.
func Sorted(entries map[string]types.Entry) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

// ByCategory returns the entries of category c in Sorted order.
func ByCategory(entries map[string]types.Entry, c types.Category) []types.Entry {
	var out []types.Entry
	for _, e := range entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

func sortEntries(entries []types.Entry) {
	lower := cases.Lower(language.Und)
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.Name] = lower.String(e.Name)
	}
	sort.Slice(entries, func(i, j int) bool {
		ki, kj := keys[entries[i].Name], keys[entries[j].Name]
		if ki != kj {
			return ki < kj
		}
		return entries[i].Name < entries[j].Name
	})
}

// Definitions renders the flat definitions array module.
func Definitions(entries map[string]types.Entry, source string) string {
	var b strings.Builder
	writeHeader(&b, source)
	b.WriteString("module.exports = [\n")
	sorted := Sorted(entries)
	for i, e := range sorted {
		b.WriteString("  ")
		writeEntry(&b, e)
		if i < len(sorted)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("];\n")
	return b.String()
}

// Dictionary renders the grouped dictionary module: a title and one
// section per category in Keywords, Operators, Identifiers order.
func Dictionary(entries map[string]types.Entry, source, title string) string {
	var b strings.Builder
	writeHeader(&b, source)
	b.WriteString("module.exports = {\n")
	fmt.Fprintf(&b, "  title: '%s',\n", Escape(title))
	b.WriteString("  sections: [\n")
	for si, c := range types.Categories {
		b.WriteString("    {\n")
		fmt.Fprintf(&b, "      title: '%s',\n", Escape(c.SectionTitle()))
		b.WriteString("      items: [\n")
		items := ByCategory(entries, c)
		for i, e := range items {
			b.WriteString("        ")
			writeEntry(&b, e)
			if i < len(items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString("      ]\n")
		b.WriteString("    }")
		if si < len(types.Categories)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  ]\n")
	b.WriteString("};\n")
	return b.String()
}

func writeHeader(b *strings.Builder, source string) {
	name := DefaultSource
	if source != "" {
		name = filepath.Base(source)
	}
	fmt.Fprintf(b, "// Auto-generated from %s. Do not edit manually.\n", name)
}

// writeEntry writes one entry object literal. The example key is omitted
// when the entry has no example.
func writeEntry(b *strings.Builder, e types.Entry) {
	fmt.Fprintf(b, "{ token: '%s', type: '%s', description: '%s'",
		Escape(e.Name), Escape(string(e.Category)), Escape(e.Description))
	if e.Example != "" {
		fmt.Fprintf(b, ", example: '%s'", Escape(e.Example))
	}
	b.WriteString(" }")
}
