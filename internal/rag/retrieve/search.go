package retrieve

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
)

// Scoring weights. A title hit outweighs everything - a section named
// after the query is almost certainly the right one - keyword hits sit
// between title and raw content frequency.
const (
	titleMatchScore   = 50
	contentMatchScore = 10
	keywordMatchScore = 25

	maxResults        = 5
	maxExcerptLines   = 3
	minSentenceLength = 20
	minTermLength     = 2
)

const contextHeader = "RELEVANT COMPANY POLICY INFORMATION:\n\n"

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

type scoredSection struct {
	content string
	score   int
	source  string
	section string
}

// Search scores every section of every document against the query and
// assembles a bounded, attributed context block for the LLM prompt. An
// empty string means nothing relevant was found - that is a valid
// outcome, not an error.
func Search(query string, documents []docModel.ProcessedDocument) string {
	policyContext, _ := SearchWithSources(query, documents)
	return policyContext
}

// SearchWithSources additionally reports which documents contributed to
// the context block, deduplicated, in result order.
func SearchWithSources(query string, documents []docModel.ProcessedDocument) (string, []string) {
	if len(documents) == 0 {
		return "", nil
	}

	searchTerms := tokenizeQuery(query)
	if len(searchTerms) == 0 {
		return "", nil
	}

	var results []scoredSection
	for _, doc := range documents {
		for _, section := range doc.Sections {
			score := scoreSection(section, searchTerms)
			if score == 0 {
				continue
			}

			excerpt := relevantExcerpt(section.Content, searchTerms)
			if excerpt == "" {
				//scored on title or keywords alone, nothing quotable
				continue
			}

			results = append(results, scoredSection{
				content: excerpt,
				score:   score,
				source:  doc.Name,
				section: section.Title,
			})
		}
	}

	//stable keeps encounter order between equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	if len(results) == 0 {
		return "", nil
	}

	return renderContext(results)
}

func tokenizeQuery(query string) []string {
	var terms []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if len(term) > minTermLength {
			terms = append(terms, term)
		}
	}
	return terms
}

func scoreSection(section docModel.DocumentSection, searchTerms []string) int {
	contentLower := strings.ToLower(section.Content)
	titleLower := strings.ToLower(section.Title)

	score := 0
	for _, term := range searchTerms {
		if strings.Contains(titleLower, term) {
			score += titleMatchScore
		}

		score += strings.Count(contentLower, term) * contentMatchScore

		for _, keyword := range section.Keywords {
			if strings.Contains(keyword, term) {
				score += keywordMatchScore
				break
			}
		}
	}
	return score
}

// relevantExcerpt picks up to three sentence-like units that actually
// mention a search term. A section that scored but has no quotable
// sentence yields nothing and is dropped from the final context.
func relevantExcerpt(content string, searchTerms []string) string {
	var relevant []string
	for _, sentence := range sentenceBoundary.Split(content, -1) {
		if len(strings.TrimSpace(sentence)) <= minSentenceLength {
			continue
		}
		sentenceLower := strings.ToLower(sentence)
		for _, term := range searchTerms {
			if strings.Contains(sentenceLower, term) {
				relevant = append(relevant, sentence)
				break
			}
		}
		if len(relevant) == maxExcerptLines {
			break
		}
	}
	return strings.TrimSpace(strings.Join(relevant, ". "))
}

func renderContext(results []scoredSection) (string, []string) {
	var b strings.Builder
	b.WriteString(contextHeader)

	var sources []string
	seen := make(map[string]bool)
	for i, result := range results {
		fmt.Fprintf(&b, "%d. FROM \"%s\" - %s:\n%s\n\n", i+1, result.source, result.section, result.content)
		if !seen[result.source] {
			seen[result.source] = true
			sources = append(sources, result.source)
		}
	}

	b.WriteString("\nSOURCE DOCUMENTS: " + strings.Join(sources, ", "))
	return b.String(), sources
}
