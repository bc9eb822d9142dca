package htmldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityIdentical(t *testing.T) {
	inputs := []string{
		"<p>hi</p>",
		"<div>\n  <span>x</span>\n</div>",
		"plain text",
	}
	for _, in := range inputs {
		assert.Equal(t, 100, Similarity(in, in), in)
	}
}

func TestSimilarityNormalizesWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, 100, Similarity("<P>Hello   World</P>", "<p>hello\n\tworld</p>"))
	assert.Equal(t, 100, Similarity("   ", ""))
}

func TestSimilarityEmptyInputs(t *testing.T) {
	assert.Equal(t, 100, Similarity("", ""))
	assert.Equal(t, 0, Similarity("", "abc"))
	assert.Equal(t, 0, Similarity("abc", ""))
}

func TestSimilarityScore(t *testing.T) {
	// kitten -> sitting is distance 3 over max length 7.
	assert.Equal(t, 57, Similarity("kitten", "sitting"))
	assert.Equal(t, 0, Similarity("abc", "xyz"))
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"<p>hi</p>", "<p>bye</p>"},
		{"<h1>Title</h1>", "<h2>Title</h2><p>extra</p>"},
		{"a", "abcdef"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
	}
}

func TestCells(t *testing.T) {
	assert.Equal(t, 1, Cells("", ""))
	// "<p>x</p>" is 8 runes, "  A  B " normalizes to "a b"
	assert.Equal(t, 9*4, Cells("<p>x</p>", "  A  B "))
	assert.Equal(t, Cells("abc", "de"), Cells("de", "abc"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"héllo", "hello", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestDiffLinesIdentical(t *testing.T) {
	assert.Empty(t, DiffLines("<p>a</p>\n<p>b</p>", "<p>a</p>\n<p>b</p>"))
	assert.Empty(t, DiffLines("", ""))
}

func TestDiffLinesModified(t *testing.T) {
	diffs := DiffLines("<p>hi</p>", "<p>bye</p>")
	require.Len(t, diffs, 1)
	assert.Equal(t, 1, diffs[0].LineNumber)
	assert.Equal(t, KindModified, diffs[0].Kind)
	assert.Equal(t, "<p>hi</p>", diffs[0].ExpectedLine)
	assert.Equal(t, "<p>bye</p>", diffs[0].ActualLine)
}

func TestDiffLinesRemoved(t *testing.T) {
	diffs := DiffLines("a\nb", "a")
	require.Len(t, diffs, 1)
	assert.Equal(t, 2, diffs[0].LineNumber)
	assert.Equal(t, KindRemoved, diffs[0].Kind)
	assert.Equal(t, "", diffs[0].ActualLine)
}

func TestDiffLinesAdded(t *testing.T) {
	diffs := DiffLines("a", "a\n<footer></footer>")
	require.Len(t, diffs, 1)
	assert.Equal(t, 2, diffs[0].LineNumber)
	assert.Equal(t, KindAdded, diffs[0].Kind)
}

func TestTagCounts(t *testing.T) {
	counts := TagCounts("<div><P>one</P><p>two</p><br/></div>")
	assert.Equal(t, map[string]int{"div": 1, "p": 2, "br": 1}, counts)
}

func TestCompare(t *testing.T) {
	r := Compare("<ul>\n<li>a</li>\n</ul>", "<ul>\n<li>b</li>\n</ul>")
	assert.True(t, r.StructureMatch)
	assert.Len(t, r.Differences, 1)
	assert.Less(t, r.Similarity, 100)

	r = Compare("<p>x</p>", "<span>x</span>")
	assert.False(t, r.StructureMatch)
}
