package doctree

import (
	"regexp"
	"strings"
)

// DocTree is the root of a parsed content document.
type DocTree struct {
	Title       string      // Front matter title, first h1, or file name
	FrontMatter FrontMatter // Zero value when the source has none
	Children    []*DocNode  // Top-level sections
}

// FrontMatter is the metadata block at the top of a content file.
type FrontMatter struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition float64  `yaml:"sidebar_position"`
	Slug            string   `yaml:"slug"`
	Description     string   `yaml:"description"`
	Tags            []string `yaml:"tags"`
	Draft           bool     `yaml:"draft"`
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Level    int        // Heading level, 1-6 (0 for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Heading is one table of contents entry.
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Outline lists the headings of the document in order, down to maxLevel.
// The document title heading is skipped.
func (t *DocTree) Outline(maxLevel int) []Heading {
	var out []Heading
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if n.Title != "" && n.Level > 1 && n.Level <= maxLevel {
				out = append(out, Heading{Level: n.Level, Title: n.Title, Anchor: Anchor(n.Title)})
			}
			walk(n.Children)
		}
	}
	walk(t.Children)
	return out
}

var anchorStrip = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)

// Anchor derives the fragment id a heading is rendered with.
func Anchor(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = anchorStrip.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), "-")
}

// Words counts the words of every heading and text block.
func (t *DocTree) Words() int {
	n := 0
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, node := range nodes {
			n += len(strings.Fields(node.Title)) + len(strings.Fields(node.Text))
			walk(node.Children)
		}
	}
	walk(t.Children)
	return n
}

// WordsPerMinute is the reading speed ReadingTime assumes.
const WordsPerMinute = 200

// ReadingTime estimates the minutes needed to read words, rounded up.
// Any non-empty document takes at least a minute.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
