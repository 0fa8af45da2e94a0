package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
)

// TextParser handles plain text files. A leading front matter block is
// honored like in Markdown. Lines starting with "# " and lines underlined
// with === or --- become headings so the outline has something to show.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fm, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	var secs sections
	var para []string
	flush := func() {
		secs.text(strings.Join(para, "\n"))
		para = para[:0]
	}

	src := strings.ReplaceAll(string(body), "\r\n", "\n")
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if level, title := atxHeading(trimmed); level > 0 {
			flush()
			secs.heading(title, level)
			continue
		}
		if level := underlineLevel(trimmed); level > 0 {
			if len(para) == 0 {
				continue // a bare rule
			}
			title := strings.TrimSpace(para[len(para)-1])
			para = para[:len(para)-1]
			flush()
			secs.heading(title, level)
			continue
		}
		para = append(para, strings.TrimRight(line, " \t"))
	}
	flush()

	tree := &doctree.DocTree{FrontMatter: fm, Children: secs.nodes()}
	resolveTitle(tree, filename)
	return tree, nil
}

// atxHeading parses "## Title" style lines.
func atxHeading(line string) (int, string) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) || line[level] != ' ' {
		return 0, ""
	}
	title := strings.TrimSpace(line[level:])
	if closed := strings.TrimRight(title, "#"); strings.HasSuffix(closed, " ") {
		title = strings.TrimSpace(closed)
	}
	return level, title
}

// underlineLevel reports 1 for a line of =, 2 for a line of -.
func underlineLevel(line string) int {
	if len(line) < 3 || strings.Trim(line, line[:1]) != "" {
		return 0
	}
	switch line[0] {
	case '=':
		return 1
	case '-':
		return 2
	}
	return 0
}
