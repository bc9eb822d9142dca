// htmldiff 对比两个 HTML 文件，输出相似度与逐行差异
//
// 用法: go run ./cmd/htmldiff [-threshold 80] expected.html actual.html
package main

import (
	"aura_edu_backend/pkg/htmldiff"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
)

func main() {
	threshold := flag.Int("threshold", 80, "通过所需的最低相似度")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: htmldiff [-threshold N] expected.html actual.html\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	red := color.New(color.FgRed, color.Bold)
	expected, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		red.Fprintf(os.Stderr, "read %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	actual, err := os.ReadFile(flag.Arg(1))
	if err != nil {
		red.Fprintf(os.Stderr, "read %s: %v\n", flag.Arg(1), err)
		os.Exit(1)
	}

	report := htmldiff.Compare(string(expected), string(actual))
	printReport(report, *threshold)

	if report.Similarity < *threshold {
		os.Exit(1)
	}
}

func printReport(report htmldiff.Report, threshold int) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	blue := color.New(color.FgCyan)

	scoreColor := green
	if report.Similarity < threshold {
		scoreColor = red
	}
	scoreColor.Printf("Similarity: %d%% (threshold %d%%)\n", report.Similarity, threshold)

	if report.StructureMatch {
		green.Println("Tag structure matches")
	} else {
		yellow.Println("Tag structure differs:")
		for _, tag := range tagNames(report.ExpectedTags, report.ActualTags) {
			e, a := report.ExpectedTags[tag], report.ActualTags[tag]
			if e != a {
				yellow.Printf("  <%s> expected %d, got %d\n", tag, e, a)
			}
		}
	}

	if len(report.Differences) == 0 {
		return
	}
	fmt.Println()
	for _, d := range report.Differences {
		blue.Printf("line %d (%s)\n", d.LineNumber, d.Kind)
		if d.Kind != htmldiff.KindAdded {
			red.Printf("- %s\n", d.ExpectedLine)
		}
		if d.Kind != htmldiff.KindRemoved {
			green.Printf("+ %s\n", d.ActualLine)
		}
	}
}

func tagNames(a, b map[string]int) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
