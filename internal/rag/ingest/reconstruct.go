package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// Two fragments whose vertical positions differ by less than this many
// layout units are treated as sitting on the same line.
const sameLineTolerance = 5.0

var (
	spaceRuns     = regexp.MustCompile(`[^\S\n]+`)
	blankLineRuns = regexp.MustCompile(`\n\s*\n`)
)

// reconstructPage orders positioned fragments into reading order: top to
// bottom, and left to right within a line. Fragments arrive in whatever
// order the pdf content stream emitted them.
func reconstructPage(fragments []textFragment) string {
	sorted := make([]textFragment, len(fragments))
	copy(sorted, fragments)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		yDiff := a.y - b.y
		if yDiff < 0 {
			yDiff = -yDiff
		}
		if yDiff < sameLineTolerance { //same line
			return a.x < b.x
		}
		return a.y > b.y //higher on the page reads first
	})

	parts := make([]string, 0, len(sorted))
	for _, fragment := range sorted {
		parts = append(parts, fragment.text)
	}
	return strings.Join(parts, " ")
}

// normalizeText cleans the concatenated page text: runs of spaces and
// tabs collapse to a single space, blank-line runs collapse to a single
// newline, and the edges are trimmed.
func normalizeText(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
