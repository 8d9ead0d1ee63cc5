package ingest

import (
	"regexp"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	anyDigit       = regexp.MustCompile(`\d`)
	//an extremely long unbroken run means the extractor lost its spacing
	runOnWord = regexp.MustCompile(`\w{50,}`)
)

// assessExtractionQuality grades how cleanly text came out of the source
// format. It is a coarse signal, not an authority - rules are checked in
// order and the first match wins.
func assessExtractionQuality(text string, wordCount int, pageCount int) docModel.ExtractionQuality {
	avgWordsPerPage := float64(wordCount) / float64(pageCount)
	hasStructure := paragraphBreak.MatchString(text)
	hasNumbers := anyDigit.MatchString(text)
	hasProperSpacing := !runOnWord.MatchString(text)

	switch {
	case avgWordsPerPage > 200 && hasStructure && hasNumbers && hasProperSpacing:
		return docModel.QualityExcellent
	case avgWordsPerPage > 100 && hasStructure:
		return docModel.QualityGood
	case avgWordsPerPage > 50:
		return docModel.QualityFair
	default:
		return docModel.QualityPoor
	}
}
