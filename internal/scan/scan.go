// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/dictgen/pkg/types"
)

var (
	// entryHeadingRe matches an entry heading: exactly three # markers.
	entryHeadingRe = regexp.MustCompile(`^###\s+(.*)$`)

	// stopHeadingRe matches any heading of level 1 to 3.
	stopHeadingRe = regexp.MustCompile(`^#{1,3}(?:\s|$)`)

	// titleRe matches the level-1 document title.
	titleRe = regexp.MustCompile(`^#\s+(.+)$`)

	// backtickedRe matches a heading that is exactly one back-ticked token.
	backtickedRe = regexp.MustCompile("^`([^`]+)`$")

	// separatorRe matches a thematic break line.
	separatorRe = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

// descriptionLabels are the accepted spellings of the description label,
// lower-cased. Longer emphasis forms come first.
var descriptionLabels = []string{
	"**description:**",
	"_description:_",
	"*description:*",
	"description:",
}

// structuralLabels are headings that never name an entry.
var structuralLabels = map[string]bool{
	"entries":           true,
	"table of contents": true,
	"contents":          true,
	"index":             true,
}

// Document is the result of scanning one source document.
type Document struct {
	// Title is the text of the first level-1 heading, or empty.
	Title string

	// Entries holds every entry occurrence in document order.
	Entries []types.RawEntry
}

// Scan splits text into lines and extracts every entry.
func Scan(text string) Document {
	s := NewScanner(text)
	var entries []types.RawEntry
	for {
		e, ok := s.Next()
		if !ok {
			break
		}
		entries = append(entries, e)
	}
	return Document{Title: s.Title(), Entries: entries}
}

// Scanner walks a document line by line. It holds the cursor and the
// category in effect; a Scanner must not be shared between goroutines.
type Scanner struct {
	lines    []string
	pos      int
	category types.Category
	title    string
}

// NewScanner returns a Scanner positioned at the first line of text.
func NewScanner(text string) *Scanner {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &Scanner{lines: strings.Split(text, "\n")}
}

// Title returns the document title seen so far.
func (s *Scanner) Title() string {
	return s.title
}

// Category returns the category currently in effect.
func (s *Scanner) Category() types.Category {
	return s.category
}

// Next advances to the next entry heading and returns the entry it
// introduces. It returns false at end of input.
func (s *Scanner) Next() (types.RawEntry, bool) {
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		s.category = Classify(line, s.category)
		if s.title == "" {
			if m := titleRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				s.title = strings.TrimSpace(m[1])
			}
		}

		name, ok := s.entryName(line)
		if !ok {
			s.pos++
			continue
		}

		entry, end := s.readEntry(name)
		s.pos = end
		return entry, true
	}
	return types.RawEntry{}, false
}

// entryName reports whether line starts an entry in the current section
// and returns its normalized name.
func (s *Scanner) entryName(line string) (string, bool) {
	m := entryHeadingRe.FindStringSubmatch(line)
	if m == nil || !s.category.Valid() || isSectionHeading(line) {
		return "", false
	}
	name := normalizeName(m[1])
	if name == "" || structuralLabels[strings.ToLower(name)] {
		return "", false
	}
	return name, true
}

// readEntry reads the description and example following the heading at
// s.pos. It returns the entry and the index of the first unconsumed line.
func (s *Scanner) readEntry(name string) (types.RawEntry, int) {
	entry := types.RawEntry{Name: name, Category: s.category}
	start := s.pos + 1

	desc, j := s.readDescription(start)
	example, end, labeled := s.readExample(j)
	if !labeled {
		if ex, fenceEnd, ok := s.fenceAfter(start); ok {
			example = ex
			end = max(end, fenceEnd)
		}
	}

	entry.Description = desc
	entry.Example = example
	if entry.Description == "" {
		entry.Description = synthesize(name, entry.Category)
		entry.Synthesized = true
	}
	return entry, end
}

// readDescription looks for a description label before the next heading.
// Lines passed over while looking are fed to the classifier. It returns
// the description (empty when none was found) and where it stopped.
func (s *Scanner) readDescription(j int) (string, int) {
	n := len(s.lines)
	for j < n {
		line := s.lines[j]
		if rest, ok := descriptionLabel(line); ok {
			return s.readDescriptionBlock(j+1, rest)
		}
		if isHeading(line) {
			return "", j
		}
		s.category = Classify(line, s.category)
		j++
	}
	return "", j
}

// readDescriptionBlock accumulates the description body starting at j.
// first is any text that followed the label on the label line.
func (s *Scanner) readDescriptionBlock(j int, first string) (string, int) {
	n := len(s.lines)
	var body []string
	if first != "" {
		body = append(body, first)
	}
	if j < n && isSeparator(s.lines[j]) {
		j++
	}
	for ; j < n; j++ {
		t := s.lines[j]
		if isExampleLabel(t) || isHeading(t) || isAnchor(t) {
			break
		}
		if isSeparator(t) {
			if hasText(body) {
				break
			}
			continue
		}
		body = append(body, strings.TrimRight(t, " \t"))
	}
	return strings.TrimSpace(strings.Join(body, "\n")), j
}

// readExample looks for an Example: label starting at j and captures the
// fenced block after it. labeled reports whether the label was found.
func (s *Scanner) readExample(j int) (example string, end int, labeled bool) {
	n := len(s.lines)
	for j < n && !isExampleLabel(s.lines[j]) {
		if isHeading(s.lines[j]) || isAnchor(s.lines[j]) {
			return "", j, false
		}
		j++
	}
	if j >= n {
		return "", j, false
	}

	j = skipBlank(s.lines, j+1)
	if j < n && fenceMarker(s.lines[j]) != "" {
		example, end = readFence(s.lines, j)
		return example, end, true
	}
	return "", j, true
}

// fenceAfter captures a fenced block that follows the heading separated
// only by blank lines.
func (s *Scanner) fenceAfter(start int) (string, int, bool) {
	j := skipBlank(s.lines, start)
	if j < len(s.lines) && fenceMarker(s.lines[j]) != "" {
		example, end := readFence(s.lines, j)
		return example, end, true
	}
	return "", 0, false
}

// readFence captures the body of the fenced block opening at lines[j].
// It returns the body and the index after the closing fence.
func readFence(lines []string, j int) (string, int) {
	marker := fenceMarker(lines[j])
	j++
	var body []string
	for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j]), marker) {
		body = append(body, strings.TrimRight(lines[j], " \t"))
		j++
	}
	if j < len(lines) {
		j++
	}

	// Drop leading and trailing empty lines; indentation inside is kept.
	for len(body) > 0 && body[0] == "" {
		body = body[1:]
	}
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	return strings.Join(body, "\n"), j
}

// fenceMarker returns the run of back-ticks or tildes opening a fenced
// block on line, or "" when line does not open one.
func fenceMarker(line string) string {
	t := strings.TrimSpace(line)
	for _, c := range []string{"`", "~"} {
		run := len(t) - len(strings.TrimLeft(t, c))
		if run >= 3 {
			return t[:run]
		}
	}
	return ""
}

// descriptionLabel reports whether line carries a description label and
// returns any text after it.
func descriptionLabel(line string) (string, bool) {
	t := strings.TrimSpace(line)
	lower := strings.ToLower(t)
	for _, label := range descriptionLabels {
		if strings.HasPrefix(lower, label) {
			return strings.TrimSpace(t[len(label):]), true
		}
	}
	return "", false
}

// isExampleLabel reports whether line is an Example: label, optionally
// wrapped in emphasis markers.
func isExampleLabel(line string) bool {
	t := strings.ToLower(strings.Trim(strings.TrimSpace(line), "_*"))
	return strings.HasPrefix(t, "example:")
}

func isHeading(line string) bool {
	return stopHeadingRe.MatchString(line)
}

func isSeparator(line string) bool {
	return separatorRe.MatchString(strings.TrimSpace(line))
}

func skipBlank(lines []string, j int) int {
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	return j
}

// hasText reports whether any accumulated line is non-blank.
func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// normalizeName trims a heading and strips one layer of back-tick quoting
// when the heading is exactly one back-ticked token.
func normalizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := backtickedRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// synthesize builds the fallback description for an entry the document
// does not describe.
func synthesize(name string, c types.Category) string {
	noun := string(c)
	if c == types.Identifier {
		noun = "standard library identifier"
	}
	return fmt.Sprintf("`%s` is a C %s.", name, noun)
}
