// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge collapses repeated dictionary entries into one entry per name.
package merge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/dictgen/pkg/types"
)

// Merge folds raw entries into a map keyed by name (case-sensitive).
//
// When a name repeats, the occurrence with the higher category precedence
// replaces the stored entry wholesale and a lower one is discarded. At
// equal precedence the stored name and category are kept, and the
// description and example are each upgraded to the longer of the two,
// independently of each other.
func Merge(raw []types.RawEntry) map[string]types.Entry {
	merged := make(map[string]types.Entry, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		r.Name = name

		stored, ok := merged[name]
		if !ok {
			merged[name] = types.Entry(r)
			continue
		}

		switch incoming, current := r.Category.Precedence(), stored.Category.Precedence(); {
		case incoming > current:
			merged[name] = types.Entry(r)
		case incoming == current:
			if textLen(strings.TrimSpace(r.Description)) > textLen(strings.TrimSpace(stored.Description)) {
				stored.Description = r.Description
				stored.Synthesized = r.Synthesized
			}
			if textLen(r.Example) > textLen(stored.Example) {
				stored.Example = r.Example
			}
			merged[name] = stored
		}
	}
	return merged
}

// textLen measures text in characters, not bytes.
func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Synthesized returns the sorted names whose description was generated
// rather than taken from the document.
func Synthesized(entries map[string]types.Entry) []string {
	var names []string
	for name, e := range entries {
		if e.Synthesized {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// CountByCategory returns the number of entries in each category.
func CountByCategory(entries map[string]types.Entry) map[types.Category]int {
	counts := make(map[types.Category]int, len(types.Categories))
	for _, e := range entries {
		counts[e.Category]++
	}
	return counts
}
