package ingest

import "testing"

func TestReconstructPage_ReadingOrder(t *testing.T) {
	tests := []struct {
		name      string
		fragments []textFragment
		want      string
	}{
		{
			name: "Same line sorts left to right",
			fragments: []textFragment{
				{text: "world", x: 120, y: 700},
				{text: "hello", x: 40, y: 702},
			},
			want: "hello world",
		},
		{
			name: "Distinct lines sort top down",
			fragments: []textFragment{
				{text: "second line", x: 40, y: 650},
				{text: "first line", x: 40, y: 700},
			},
			want: "first line second line",
		},
		{
			name: "Vertical difference inside tolerance is one line",
			fragments: []textFragment{
				{text: "right", x: 200, y: 700},
				{text: "left", x: 10, y: 704.9},
			},
			want: "left right",
		},
		{
			name: "Vertical difference at tolerance splits lines",
			fragments: []textFragment{
				{text: "below", x: 10, y: 695},
				{text: "above", x: 200, y: 700},
			},
			want: "above below",
		},
		{
			name:      "Empty page",
			fragments: nil,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructPage(tt.fragments)
			if got != tt.want {
				t.Errorf("reconstructPage got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Space runs collapse but newlines survive",
			in:   "one   two\t\tthree\nfour",
			want: "one two three\nfour",
		},
		{
			name: "Blank line runs collapse to one newline",
			in:   "page one\n\n\n   \npage two",
			want: "page one\npage two",
		},
		{
			name: "Edges trimmed",
			in:   "  \n  body text \n ",
			want: "body text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeText(tt.in)
			if got != tt.want {
				t.Errorf("normalizeText got %q, want %q", got, tt.want)
			}
		})
	}
}
