package htmldiff

import "strings"

type DiffKind string

const (
	KindAdded    DiffKind = "added"
	KindRemoved  DiffKind = "removed"
	KindModified DiffKind = "modified"
)

// LineDiff is one differing line between the expected and actual output.
type LineDiff struct {
	LineNumber   int      `json:"lineNumber"`
	ExpectedLine string   `json:"expectedLine"`
	ActualLine   string   `json:"actualLine"`
	Kind         DiffKind `json:"kind"`
}

// DiffLines compares expected and actual line by line. Lines past the end of
// the shorter input read as empty.
func DiffLines(expected, actual string) []LineDiff {
	diffs := []LineDiff{}
	if expected == actual {
		return diffs
	}

	el := strings.Split(expected, "\n")
	al := strings.Split(actual, "\n")

	total := len(el)
	if len(al) > total {
		total = len(al)
	}

	for i := 0; i < total; i++ {
		e := lineAt(el, i)
		a := lineAt(al, i)
		if e == a {
			continue
		}

		kind := KindModified
		switch {
		case e == "":
			kind = KindAdded
		case a == "":
			kind = KindRemoved
		}

		diffs = append(diffs, LineDiff{
			LineNumber:   i + 1,
			ExpectedLine: e,
			ActualLine:   a,
			Kind:         kind,
		})
	}

	return diffs
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
