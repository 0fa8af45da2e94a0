package parser

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. The document information dictionary
// stands in for front matter (Title, Subject as description, Keywords as
// tags) and bookmarks become the heading outline. Page text is read with
// the Go library, falling back to pdftotext when enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{}
	var pages []string

	reader, err := pdflib.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err == nil {
		info := reader.Trailer().Key("Info")
		tree.FrontMatter = pdfFrontMatter(
			info.Key("Title").Text(),
			info.Key("Subject").Text(),
			info.Key("Keywords").Text(),
		)
		tree.Children = outlineNodes(reader.Outline().Child, 2)
		pages, err = pdfPages(reader)
	}
	if err != nil && p.FallbackPdftotext {
		var text string
		text, err = extractPdftotext(raw)
		pages = strings.Split(text, "\f")
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	tree.Children = append(tree.Children, pageNodes(pages)...)
	resolveTitle(tree, filename)
	return tree, nil
}

func pdfFrontMatter(title, subject, keywords string) doctree.FrontMatter {
	return doctree.FrontMatter{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(subject),
		Tags:        splitKeywords(keywords),
	}
}

// outlineNodes turns bookmarks into headings. Top-level bookmarks are
// sections of the document, so they start at level 2.
func outlineNodes(entries []pdflib.Outline, level int) []*doctree.DocNode {
	var out []*doctree.DocNode
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			continue
		}
		out = append(out, &doctree.DocNode{
			Title:    title,
			Level:    min(level, 6),
			Children: outlineNodes(e.Child, level+1),
		})
	}
	return out
}

// pdfPages returns the plain text of every page. A page that fails to
// decode yields an empty string so numbering stays aligned.
func pdfPages(reader *pdflib.Reader) ([]string, error) {
	n := reader.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("no pages")
	}
	pages := make([]string, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text, err := page.GetPlainText(nil); err == nil {
			pages[i-1] = text
		}
	}
	return pages, nil
}

// pageNodes keeps one text node per non-empty page.
func pageNodes(pages []string) []*doctree.DocNode {
	var out []*doctree.DocNode
	for i, text := range pages {
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, &doctree.DocNode{Text: text, Page: i + 1})
		}
	}
	return out
}

func extractPdftotext(raw []byte) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", "-", "-")
	cmd.Stdin = bytes.NewReader(raw)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
