// Package htmllint flags obvious mistakes in hand-written HTML while a learner
// is typing. It is a line-oriented heuristic, not a tokenizer: it can miss real
// errors and report false ones, and it never decides whether a submission passes.
package htmllint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type IssueType string

const (
	TypeSyntaxError IssueType = "syntax-error"
	TypeUnclosedTag IssueType = "unclosed-tag"
	TypeTypo        IssueType = "typo"
)

// Issue locates one finding. Line and Column are 1-based; Length is in runes.
type Issue struct {
	Line     int       `json:"line"`
	Column   int       `json:"column"`
	Length   int       `json:"length"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Type     IssueType `json:"type"`
}

var (
	tagStartRe = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9-]*`)
	typoRe     = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)`)
)

// common misspellings of tag names mapped to the intended tag
var tagTypos = map[string]string{
	"htlm":   "html",
	"hmtl":   "html",
	"thml":   "html",
	"haed":   "head",
	"hed":    "head",
	"bdoy":   "body",
	"boyd":   "body",
	"bod":    "body",
	"titel":  "title",
	"tittle": "title",
	"tilte":  "title",
	"dvi":    "div",
	"idv":    "div",
	"sapn":   "span",
	"spna":   "span",
	"iamge":  "img",
	"imgae":  "img",
	"buton":  "button",
	"butotn": "button",
	"tabel":  "table",
	"scirpt": "script",
	"stlye":  "style",
	"lable":  "label",
	"inpt":   "input",
	"fomr":   "form",
}

type requiredClose struct {
	tag   string
	open  *regexp.Regexp
	close *regexp.Regexp
}

var requiredCloses = []requiredClose{
	newRequiredClose("html"),
	newRequiredClose("head"),
	newRequiredClose("body"),
	newRequiredClose("title"),
}

func newRequiredClose(tag string) requiredClose {
	return requiredClose{
		tag:   tag,
		open:  regexp.MustCompile(`(?i)<` + tag + `(\s[^>]*)?>`),
		close: regexp.MustCompile(`(?i)</` + tag + `\s*>`),
	}
}

// Lint scans code line by line and returns issues ordered by line.
func Lint(code string) []Issue {
	issues := []Issue{}
	lines := strings.Split(code, "\n")

	for i, line := range lines {
		issues = append(issues, checkTags(line, i+1)...)
		issues = append(issues, checkTypos(line, i+1)...)
	}

	issues = append(issues, checkRequiredCloses(code, lines)...)
	sortByPosition(issues)
	return issues
}

// Blocking keeps the issues that should stop the learner: syntax errors and
// unclosed structural tags. Typos are advisory.
func Blocking(issues []Issue) []Issue {
	out := []Issue{}
	for _, is := range issues {
		if is.Type == TypeSyntaxError || is.Type == TypeUnclosedTag {
			out = append(out, is)
		}
	}
	return out
}

func checkTags(line string, lineNo int) []Issue {
	var issues []Issue

	for _, loc := range tagStartRe.FindAllStringIndex(line, -1) {
		start, nameEnd := loc[0], loc[1]
		name := line[start:nameEnd]

		var quote rune
		closed := false
		nested := -1

	scan:
		for off, ch := range line[nameEnd:] {
			switch {
			case quote != 0:
				if ch == quote {
					quote = 0
				}
			case ch == '"' || ch == '\'':
				quote = ch
			case ch == '>':
				closed = true
				break scan
			case ch == '<':
				nested = nameEnd + off
				break scan
			}
		}

		switch {
		case nested >= 0:
			issues = append(issues, issueAt(line, lineNo, nested, 1,
				fmt.Sprintf("Unexpected '<' before %s> is closed", name), TypeSyntaxError))
		case quote != 0:
			issues = append(issues, issueAt(line, lineNo, start, utf8.RuneCountInString(line[start:]),
				fmt.Sprintf("Unbalanced %c quote in %s> attributes", quote, name), TypeSyntaxError))
		case !closed:
			issues = append(issues, issueAt(line, lineNo, start, utf8.RuneCountInString(line[start:]),
				fmt.Sprintf("Tag %s is missing its closing '>'", name), TypeSyntaxError))
		}
	}

	return issues
}

func checkTypos(line string, lineNo int) []Issue {
	var issues []Issue
	for _, m := range typoRe.FindAllStringSubmatchIndex(line, -1) {
		name := strings.ToLower(line[m[2]:m[3]])
		want, ok := tagTypos[name]
		if !ok {
			continue
		}
		is := issueAt(line, lineNo, m[0], utf8.RuneCountInString(line[m[0]:m[1]]),
			fmt.Sprintf("Unknown tag <%s>, did you mean <%s>?", name, want), TypeTypo)
		is.Severity = SeverityWarning
		issues = append(issues, is)
	}
	return issues
}

func checkRequiredCloses(code string, lines []string) []Issue {
	var issues []Issue
	for _, rc := range requiredCloses {
		if rc.close.MatchString(code) {
			continue
		}
		for i, line := range lines {
			loc := rc.open.FindStringIndex(line)
			if loc == nil {
				continue
			}
			issues = append(issues, issueAt(line, i+1, loc[0], utf8.RuneCountInString(line[loc[0]:loc[1]]),
				fmt.Sprintf("Missing closing tag </%s>", rc.tag), TypeUnclosedTag))
			break
		}
	}
	return issues
}

func issueAt(line string, lineNo, byteOffset, length int, msg string, typ IssueType) Issue {
	return Issue{
		Line:     lineNo,
		Column:   utf8.RuneCountInString(line[:byteOffset]) + 1,
		Length:   length,
		Message:  msg,
		Severity: SeverityError,
		Type:     typ,
	}
}

func sortByPosition(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})
}
