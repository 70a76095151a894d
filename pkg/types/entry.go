// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Category is the section classification of a dictionary entry.
// The zero value None means no recognized section is in effect.
type Category string

const (
	None       Category = ""
	Keyword    Category = "keyword"
	Operator   Category = "operator"
	Identifier Category = "identifier"
)

// Categories lists the recognized categories in output order.
var Categories = []Category{Keyword, Operator, Identifier}

// Precedence ranks categories when the same name is documented under more
// than one section. Higher wins; None ranks 0.
func (c Category) Precedence() int {
	switch c {
	case Keyword:
		return 3
	case Operator:
		return 2
	case Identifier:
		return 1
	default:
		return 0
	}
}

// Valid reports whether c is one of the three recognized categories.
func (c Category) Valid() bool {
	return c.Precedence() > 0
}

// ParseCategory converts s to a Category. The empty string yields None.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c != None && !c.Valid() {
		return None, fmt.Errorf("unknown category %q: use keyword, operator, or identifier", s)
	}
	return c, nil
}

// SectionTitle returns the heading used for c in the grouped dictionary.
func (c Category) SectionTitle() string {
	switch c {
	case Keyword:
		return "Keywords"
	case Operator:
		return "Operators"
	case Identifier:
		return "Standard Library Identifiers"
	default:
		return ""
	}
}

// RawEntry is one occurrence of a heading-delimited entry in the source
// document. The same name may occur more than once.
type RawEntry struct {
	// Name is the heading text with one layer of back-tick quoting removed.
	Name string `json:"token" yaml:"token"`

	// Category is the section in effect when the heading was matched.
	Category Category `json:"type" yaml:"type"`

	// Description is the text under the description label, trimmed of
	// surrounding blank lines. Never empty once scanned.
	Description string `json:"description" yaml:"description"`

	// Example is the body of the example code block, or empty.
	Example string `json:"example,omitempty" yaml:"example,omitempty"`

	// Synthesized is true when Description was generated because the
	// document had none for this entry.
	Synthesized bool `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
}

// Entry is the merged, one-per-name form of a dictionary entry.
type Entry RawEntry
