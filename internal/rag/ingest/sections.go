package ingest

import (
	"regexp"
	"strings"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
)

const (
	//candidate header lines longer than this never qualify
	maxHeaderLength = 100
	//keywords are resampled whenever accumulated content hits a multiple of this
	keywordSampleInterval = 500
	maxKeywords           = 20
)

// Header shapes seen in company policy documents: a policy-domain keyword
// prefix, a numbered heading, or an uppercase run.
var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(POLICY|PROCEDURE|GUIDELINES?|OVERVIEW|INTRODUCTION|PURPOSE|SCOPE|DEFINITIONS?|RESPONSIBILITIES|PROCESS|REQUIREMENTS?|BENEFITS?|LEAVE|VACATION|SICK|REMOTE|WORK|HOURS|SECURITY|CONDUCT|ETHICS|TRAINING|DEVELOPMENT|EXPENSE|REIMBURSEMENT|INSURANCE|HEALTH|DENTAL|VISION|401K|RETIREMENT)[\s:]`),
	regexp.MustCompile(`^\d+\.\s+[A-Z][^.]{10,50}$`),
	regexp.MustCompile(`^[A-Z][A-Z\s]{5,30}$`),
}

var nonWordChars = regexp.MustCompile(`[^\w\s]`)

var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"have": true, "will": true, "been": true, "were": true, "said": true,
	"each": true, "which": true, "their": true, "time": true, "would": true,
	"there": true, "could": true, "other": true, "more": true, "very": true,
	"what": true, "know": true, "just": true, "first": true, "into": true,
	"over": true, "think": true, "also": true, "your": true, "work": true,
	"life": true, "only": true, "can": true, "still": true, "should": true,
	"after": true, "being": true, "now": true, "made": true, "before": true,
	"here": true, "through": true, "when": true, "where": true, "much": true,
	"some": true, "these": true, "many": true, "then": true, "them": true,
	"well": true,
}

func isSectionHeader(line string) bool {
	if len(line) >= maxHeaderLength {
		return false
	}
	for _, pattern := range sectionPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// extractDocumentSections partitions the cleaned text into titled
// sections. Page numbers are estimated from the header line's
// proportional position within the document, not tracked per line.
func extractDocumentSections(fullText string, pageCount int) []docModel.DocumentSection {
	var sections []docModel.DocumentSection

	var lines []string
	for _, line := range strings.Split(fullText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if pageCount < 1 {
		pageCount = 1
	}

	var current *docModel.DocumentSection
	for index, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if isSectionHeader(trimmedLine) {
			//close the open section before starting the next one
			if current != nil && strings.TrimSpace(current.Content) != "" {
				sections = append(sections, *current)
			}

			estimatedPage := int(float64(index)/(float64(len(lines))/float64(pageCount))) + 1
			current = &docModel.DocumentSection{
				Title:       trimmedLine,
				Content:     "",
				PageNumbers: []int{estimatedPage},
				Keywords:    extractKeywords(trimmedLine),
			}
		} else if current != nil {
			current.Content += line + "\n"

			//periodic resample: only fires when the accumulated length
			//lands exactly on a multiple of the interval
			if len(current.Content)%keywordSampleInterval == 0 {
				current.Keywords = mergeKeywords(current.Keywords, extractKeywords(line))
			}
		}
	}

	if current != nil && strings.TrimSpace(current.Content) != "" {
		sections = append(sections, *current)
	}

	//no headers detected - keep everything retrievable under one section
	if len(sections) == 0 {
		pageNumbers := make([]int, pageCount)
		for i := range pageNumbers {
			pageNumbers[i] = i + 1
		}
		sections = append(sections, docModel.DocumentSection{
			Title:       "Document Content",
			Content:     fullText,
			PageNumbers: pageNumbers,
			Keywords:    extractKeywords(fullText),
		})
	}

	return sections
}

// extractKeywords pulls the distinct lowercase content words out of a
// piece of text, in first-seen order, capped at maxKeywords.
func extractKeywords(text string) []string {
	cleaned := nonWordChars.ReplaceAllString(strings.ToLower(text), " ")

	var keywords []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func mergeKeywords(existing []string, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, keyword := range existing {
		seen[keyword] = true
	}
	for _, keyword := range extra {
		if len(existing) == maxKeywords {
			break
		}
		if !seen[keyword] {
			seen[keyword] = true
			existing = append(existing, keyword)
		}
	}
	return existing
}
