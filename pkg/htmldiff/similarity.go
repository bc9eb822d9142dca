package htmldiff

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Normalize folds whitespace runs into single spaces, trims and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Similarity returns a 0-100 score for how close two HTML snippets are after
// normalization, based on Levenshtein distance over runes.
func Similarity(a, b string) int {
	na, nb := Normalize(a), Normalize(b)

	if na == nb {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}

	maxLen := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > maxLen {
		maxLen = l
	}

	distance := Levenshtein(na, nb)
	return int(math.Round(float64(maxLen-distance) / float64(maxLen) * 100))
}

// Levenshtein computes the edit distance between a and b using the full
// (n+1)x(m+1) matrix.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)

	matrix := make([][]int, n+1)
	for i := range matrix {
		matrix[i] = make([]int, m+1)
		matrix[i][0] = i
	}
	for j := 0; j <= m; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[n][m]
}

// Cells reports how many matrix cells Similarity would fill for a and b.
func Cells(a, b string) int {
	n := utf8.RuneCountInString(Normalize(a))
	m := utf8.RuneCountInString(Normalize(b))
	return (n + 1) * (m + 1)
}
