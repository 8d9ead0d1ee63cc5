package ingest

import (
	"strings"
	"testing"
)

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"Policy keyword prefix", "POLICY: Vacation and Leave", true},
		{"Keyword prefix is case insensitive", "benefits overview for staff", true},
		{"Numbered heading", "1. Introduction To The Handbook", true},
		{"Uppercase run", "EMPLOYEE CONDUCT", true},
		{"Plain sentence", "all employees must follow the rules.", false},
		{"Keyword without separator", "Policyholder", false},
		{"Numbered heading too short", "2. Scope", false},
		{"Too long to be a header", "POLICY: " + strings.Repeat("x", maxHeaderLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSectionHeader(tt.line); got != tt.want {
				t.Errorf("isSectionHeader(%q) got %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestExtractDocumentSections(t *testing.T) {
	t.Run("Headers split the document", func(t *testing.T) {
		text := "POLICY: Leave\nEmployees get 15 vacation days per year.\nPOLICY: Conduct\nBe professional at all times with clients."
		sections := extractDocumentSections(text, 2)

		if len(sections) != 2 {
			t.Fatalf("Got %d sections, want 2", len(sections))
		}
		if sections[0].Title != "POLICY: Leave" {
			t.Errorf("First title got %q", sections[0].Title)
		}
		if !strings.Contains(sections[0].Content, "15 vacation days") {
			t.Errorf("First section content got %q", sections[0].Content)
		}
		if sections[1].Title != "POLICY: Conduct" {
			t.Errorf("Second title got %q", sections[1].Title)
		}
	})

	t.Run("Header pages estimated proportionally", func(t *testing.T) {
		//10 lines over 2 pages: a header at index 5 lands on page 2
		var b strings.Builder
		for i := 0; i < 5; i++ {
			b.WriteString("POLICY: Opening\n")
		}
		b.WriteString("POLICY: Closing\n")
		for i := 0; i < 4; i++ {
			b.WriteString("closing body line with enough text\n")
		}

		sections := extractDocumentSections(b.String(), 2)
		last := sections[len(sections)-1]
		if last.Title != "POLICY: Closing" {
			t.Fatalf("Last section got %q", last.Title)
		}
		if len(last.PageNumbers) != 1 || last.PageNumbers[0] != 2 {
			t.Errorf("Estimated pages got %v, want [2]", last.PageNumbers)
		}
	})

	t.Run("Header with no content is dropped", func(t *testing.T) {
		text := "POLICY: Empty\nPOLICY: Real\nActual content lives here in this line."
		sections := extractDocumentSections(text, 1)

		if len(sections) != 1 {
			t.Fatalf("Got %d sections, want 1", len(sections))
		}
		if sections[0].Title != "POLICY: Real" {
			t.Errorf("Surviving section got %q", sections[0].Title)
		}
	})

	t.Run("No headers falls back to single section", func(t *testing.T) {
		text := "just some plain prose.\nanother plain prose line."
		sections := extractDocumentSections(text, 3)

		if len(sections) != 1 {
			t.Fatalf("Got %d sections, want 1", len(sections))
		}
		s := sections[0]
		if s.Title != "Document Content" {
			t.Errorf("Fallback title got %q", s.Title)
		}
		if s.Content != text {
			t.Errorf("Fallback content got %q", s.Content)
		}
		if len(s.PageNumbers) != 3 || s.PageNumbers[0] != 1 || s.PageNumbers[2] != 3 {
			t.Errorf("Fallback pages got %v, want [1 2 3]", s.PageNumbers)
		}
	})

	t.Run("Leading prose before first header is not lost to a ghost section", func(t *testing.T) {
		text := "intro prose before any header line.\nPOLICY: Leave\ndetails here worth keeping around."
		sections := extractDocumentSections(text, 1)

		if len(sections) != 1 {
			t.Fatalf("Got %d sections, want 1", len(sections))
		}
		if sections[0].Title != "POLICY: Leave" {
			t.Errorf("Surviving section got %q", sections[0].Title)
		}
		if strings.Contains(sections[0].Content, "intro prose") {
			t.Errorf("Preamble leaked into section: %q", sections[0].Content)
		}
		if !strings.Contains(sections[0].Content, "details here") {
			t.Errorf("Section body got %q", sections[0].Content)
		}
	})
}

func TestExtractKeywords(t *testing.T) {
	t.Run("Lowercases filters and dedupes", func(t *testing.T) {
		got := extractKeywords("Vacation, vacation days! The days accrue over time.")
		want := []string{"vacation", "days", "accrue"}

		if len(got) != len(want) {
			t.Fatalf("Got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Keyword %d got %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("Short words and stop words excluded", func(t *testing.T) {
		for _, kw := range extractKeywords("they will work with the plan") {
			if kw == "they" || kw == "will" || kw == "with" || kw == "work" || kw == "the" {
				t.Errorf("Excluded word %q made it through", kw)
			}
		}
	})

	t.Run("Capped at the keyword limit", func(t *testing.T) {
		var words []string
		for i := 0; i < maxKeywords+10; i++ {
			words = append(words, strings.Repeat(string(rune('a'+i%26)), 4+i))
		}
		got := extractKeywords(strings.Join(words, " "))
		if len(got) > maxKeywords {
			t.Errorf("Got %d keywords, cap is %d", len(got), maxKeywords)
		}
	})
}

func TestMergeKeywords(t *testing.T) {
	got := mergeKeywords([]string{"vacation", "days"}, []string{"days", "accrual", "policy"})
	want := []string{"vacation", "days", "accrual", "policy"}
	if len(got) != len(want) {
		t.Fatalf("Got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Merged keyword %d got %q, want %q", i, got[i], want[i])
		}
	}

	full := make([]string, maxKeywords)
	for i := range full {
		full[i] = strings.Repeat("x", i+4)
	}
	if merged := mergeKeywords(full, []string{"overflow"}); len(merged) != maxKeywords {
		t.Errorf("Merge past cap got %d keywords, want %d", len(merged), maxKeywords)
	}
}
