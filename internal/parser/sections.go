package parser

import (
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
)

// sections nests headings by level and attaches body text to the
// innermost open heading.
type sections struct {
	root  doctree.DocNode
	stack []*doctree.DocNode
	body  []string
}

func (s *sections) top() *doctree.DocNode {
	if len(s.stack) == 0 {
		return &s.root
	}
	return s.stack[len(s.stack)-1]
}

func (s *sections) heading(title string, level int) {
	s.flush()
	n := &doctree.DocNode{Title: title, Level: level}
	for len(s.stack) > 0 && s.stack[len(s.stack)-1].Level >= level {
		s.stack = s.stack[:len(s.stack)-1]
	}
	parent := s.top()
	parent.Children = append(parent.Children, n)
	s.stack = append(s.stack, n)
}

func (s *sections) text(t string) {
	if t = strings.TrimSpace(t); t != "" {
		s.body = append(s.body, t)
	}
}

func (s *sections) flush() {
	if len(s.body) == 0 {
		return
	}
	top := s.top()
	t := strings.Join(s.body, "\n\n")
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
	s.body = s.body[:0]
}

// nodes returns the top-level sections. Text before the first heading
// becomes a leading untitled node.
func (s *sections) nodes() []*doctree.DocNode {
	s.flush()
	out := s.root.Children
	if s.root.Text != "" {
		out = append([]*doctree.DocNode{{Text: s.root.Text}}, out...)
	}
	return out
}

// resolveTitle picks the document title: front matter, then the first
// h1, then the file name.
func resolveTitle(tree *doctree.DocTree, filename string) {
	switch {
	case tree.FrontMatter.Title != "":
		tree.Title = tree.FrontMatter.Title
	case firstH1(tree.Children) != "":
		tree.Title = firstH1(tree.Children)
	default:
		tree.Title = baseTitle(filename)
	}
}

// splitKeywords splits a comma or semicolon separated keyword list.
func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
