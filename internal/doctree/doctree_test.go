package doctree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *DocTree {
	return &DocTree{
		Title: "Schema",
		Children: []*DocNode{{
			Title: "Schema",
			Level: 1,
			Text:  "Every collection has a schema.",
			Children: []*DocNode{
				{Title: "Primary keys", Level: 2, Text: "Declared per collection."},
				{Title: "Field types", Level: 2, Children: []*DocNode{
					{Title: "Nested objects?", Level: 3},
					{Title: "Deep", Level: 4},
				}},
			},
		}},
	}
}

func TestOutline(t *testing.T) {
	got := sample().Outline(3)
	want := []Heading{
		{Level: 2, Title: "Primary keys", Anchor: "primary-keys"},
		{Level: 2, Title: "Field types", Anchor: "field-types"},
		{Level: 3, Title: "Nested objects?", Anchor: "nested-objects"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestAnchor(t *testing.T) {
	tests := map[string]string{
		"Install the client": "install-the-client",
		"  What's new?  ":    "whats-new",
		"Données & schéma":   "données-schéma",
	}
	for in, want := range tests {
		if got := Anchor(in); got != want {
			t.Errorf("Anchor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWordsAndReadingTime(t *testing.T) {
	// 1 + 5 + 2 + 3 + 2 + 2 + 1
	if got := sample().Words(); got != 16 {
		t.Errorf("expected 16 words, got %d", got)
	}
	tests := []struct{ words, want int }{
		{0, 0}, {1, 1}, {200, 1}, {201, 2}, {1000, 5},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.words); got != tt.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
