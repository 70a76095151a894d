// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan extracts dictionary entries from a Markdown reference document.
// classify.go decides which section a line places the scanner in.
package scan

import (
	"regexp"
	"strings"

	"github.com/pdiddy/dictgen/pkg/types"
)

var (
	// sectionHeadingRe matches a level-2 or level-3 heading and captures its text.
	sectionHeadingRe = regexp.MustCompile(`^#{2,3}\s+(.*)$`)

	// anchorRe matches a standalone anchor line such as <a id="kw-auto"></a>,
	// <a name='op-plus'/> or {#id-printf}. Group 1 or 2 holds the id.
	anchorRe = regexp.MustCompile(`^(?:<a\s+(?:id|name)\s*=\s*["']([^"']+)["']\s*/?>(?:\s*</a>)?|\{#([^}\s]+)\})$`)
)

// sectionPrefixes maps lower-cased section heading text to the category it opens.
var sectionPrefixes = []struct {
	prefix   string
	category types.Category
}{
	{"keywords", types.Keyword},
	{"operators", types.Operator},
	{"standard library identifiers", types.Identifier},
}

// anchorPrefixes maps anchor id prefixes to categories.
var anchorPrefixes = []struct {
	prefix   string
	category types.Category
}{
	{"kw-", types.Keyword},
	{"op-", types.Operator},
	{"id-", types.Identifier},
}

// Classify returns the category in effect after line, given the category
// in effect before it. Lines that carry no section information return
// current unchanged. Classify has no side effects.
func Classify(line string, current types.Category) types.Category {
	text := strings.ToLower(strings.TrimSpace(line))

	// The document title is explicitly not a section change.
	if isTitleHeading(text) {
		return current
	}
	if c, ok := sectionCategory(text); ok {
		return c
	}
	if c, ok := anchorCategory(text); ok {
		return c
	}
	return current
}

// isTitleHeading reports whether the trimmed line is a level-1 heading.
func isTitleHeading(text string) bool {
	return strings.HasPrefix(text, "# ") || text == "#"
}

// sectionCategory reports the category opened by a Keywords, Operators or
// Standard Library Identifiers heading. text must be trimmed and lower-cased.
func sectionCategory(text string) (types.Category, bool) {
	m := sectionHeadingRe.FindStringSubmatch(text)
	if m == nil {
		return types.None, false
	}
	for _, sp := range sectionPrefixes {
		if strings.HasPrefix(m[1], sp.prefix) {
			return sp.category, true
		}
	}
	return types.None, false
}

// anchorCategory reports the category named by a kw-/op-/id- anchor line.
func anchorCategory(text string) (types.Category, bool) {
	m := anchorRe.FindStringSubmatch(text)
	if m == nil {
		return types.None, false
	}
	id := m[1]
	if id == "" {
		id = m[2]
	}
	for _, ap := range anchorPrefixes {
		if strings.HasPrefix(id, ap.prefix) {
			return ap.category, true
		}
	}
	return types.None, false
}

// isSectionHeading reports whether line opens one of the three sections.
func isSectionHeading(line string) bool {
	_, ok := sectionCategory(strings.ToLower(strings.TrimSpace(line)))
	return ok
}

// isAnchor reports whether line is a category anchor.
func isAnchor(line string) bool {
	_, ok := anchorCategory(strings.ToLower(strings.TrimSpace(line)))
	return ok
}
