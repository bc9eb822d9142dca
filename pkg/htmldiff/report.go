package htmldiff

import (
	"maps"
	"strings"

	"golang.org/x/net/html"
)

// Report is what the admin comparison tool shows for one expected/actual pair.
type Report struct {
	Similarity     int            `json:"similarity"`
	Differences    []LineDiff     `json:"differences"`
	ExpectedTags   map[string]int `json:"expectedTags"`
	ActualTags     map[string]int `json:"actualTags"`
	StructureMatch bool           `json:"structureMatch"`
}

func Compare(expected, actual string) Report {
	et := TagCounts(expected)
	at := TagCounts(actual)

	return Report{
		Similarity:     Similarity(expected, actual),
		Differences:    DiffLines(expected, actual),
		ExpectedTags:   et,
		ActualTags:     at,
		StructureMatch: maps.Equal(et, at),
	}
}

// TagCounts counts start and self-closing tags by lower-cased name.
// Malformed markup is tokenized as far as the tokenizer gets.
func TagCounts(s string) map[string]int {
	counts := make(map[string]int)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return counts
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			counts[strings.ToLower(string(name))]++
		}
	}
}
