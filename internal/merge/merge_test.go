// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/dictgen/pkg/types"
)

func raw(name string, c types.Category, desc, example string) types.RawEntry {
	return types.RawEntry{Name: name, Category: c, Description: desc, Example: example}
}

func TestMergePrecedenceIndependentOfOrder(t *testing.T) {
	kw := raw("NULL", types.Keyword, "kw", "")
	id := raw("NULL", types.Identifier, "a much longer identifier description", "NULL;")

	for _, order := range [][]types.RawEntry{{kw, id}, {id, kw}} {
		got := Merge(order)
		assert.Len(t, got, 1)
		e := got["NULL"]
		assert.Equal(t, types.Keyword, e.Category)
		assert.Equal(t, "kw", e.Description, "lower precedence must not upgrade description")
		assert.Empty(t, e.Example, "lower precedence must not upgrade example")
	}
}

func TestMergeEqualPrecedenceUpgradesFieldsIndependently(t *testing.T) {
	first := raw("+", types.Operator, "Adds two operands together.", "")
	second := raw("+", types.Operator, "Adds.", "int c = a + b;")

	got := Merge([]types.RawEntry{first, second})

	want := types.Entry{
		Name:        "+",
		Category:    types.Operator,
		Description: "Adds two operands together.",
		Example:     "int c = a + b;",
	}
	if diff := cmp.Diff(want, got["+"]); diff != "" {
		t.Errorf("merged entry mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeEqualPrecedenceLongerDescriptionWins(t *testing.T) {
	short := raw("if", types.Keyword, "Branch.", "")
	long := raw("if", types.Keyword, "Conditional branch statement.", "")

	for _, order := range [][]types.RawEntry{{short, long}, {long, short}} {
		assert.Equal(t, "Conditional branch statement.", Merge(order)["if"].Description)
	}
}

func TestMergeComparesCharactersNotBytes(t *testing.T) {
	// "x ≤ y" is 5 characters but 7 bytes.
	multibyte := raw("<=", types.Operator, "x ≤ y", "a ≤ b")
	ascii := raw("<=", types.Operator, "abcdef", "a <= b")

	for _, order := range [][]types.RawEntry{{multibyte, ascii}, {ascii, multibyte}} {
		got := Merge(order)["<="]
		assert.Equal(t, "abcdef", got.Description)
		assert.Equal(t, "a <= b", got.Example)
	}
}

func TestMergeHigherPrecedenceReplacesWholesale(t *testing.T) {
	id := raw("sizeof", types.Identifier, "A long identifier-style description.", "sizeof x;")
	op := raw("sizeof", types.Operator, "Size.", "")

	got := Merge([]types.RawEntry{id, op})["sizeof"]
	assert.Equal(t, types.Operator, got.Category)
	assert.Equal(t, "Size.", got.Description)
	assert.Empty(t, got.Example)
}

func TestMergeSynthesizedFollowsDescription(t *testing.T) {
	synth := types.RawEntry{Name: "foo", Category: types.Identifier, Description: "`foo` is a C standard library identifier.", Synthesized: true}
	documented := raw("foo", types.Identifier, "Foo does a great many useful and important things.", "")

	got := Merge([]types.RawEntry{synth, documented})
	assert.False(t, got["foo"].Synthesized)
	assert.Empty(t, Synthesized(got))

	got = Merge([]types.RawEntry{synth})
	assert.Equal(t, []string{"foo"}, Synthesized(got))
}

func TestMergeDropsEmptyNames(t *testing.T) {
	got := Merge([]types.RawEntry{
		raw("", types.Keyword, "x", ""),
		raw("   ", types.Keyword, "x", ""),
		raw(" auto ", types.Keyword, "Automatic.", ""),
	})
	assert.Len(t, got, 1)
	assert.Equal(t, "auto", got["auto"].Name)
}

func TestMergeCaseSensitiveKeys(t *testing.T) {
	got := Merge([]types.RawEntry{
		raw("EOF", types.Identifier, "End of file.", ""),
		raw("eof", types.Identifier, "Lower-case.", ""),
	})
	assert.Len(t, got, 2)
}

func TestCountByCategory(t *testing.T) {
	got := CountByCategory(Merge([]types.RawEntry{
		raw("auto", types.Keyword, "a", ""),
		raw("if", types.Keyword, "b", ""),
		raw("+", types.Operator, "c", ""),
	}))
	assert.Equal(t, 2, got[types.Keyword])
	assert.Equal(t, 1, got[types.Operator])
	assert.Equal(t, 0, got[types.Identifier])
}
