package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading styles build the outline and
// the package core properties stand in for front matter.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	br := bytes.NewReader(raw)

	doc, err := docx.Parse(br, br.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var secs sections
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if level := docxHeadingLevel(para); level > 0 && text != "" {
			secs.heading(text, level)
			continue
		}
		secs.text(text)
	}

	fm, err := docxCoreProperties(br)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	tree := &doctree.DocTree{FrontMatter: fm, Children: secs.nodes()}
	resolveTitle(tree, filename)
	return tree, nil
}

// coreProperties is docProps/core.xml. Elements are matched by local
// name so the dc and cp namespaces need not be spelled out.
type coreProperties struct {
	Title       string `xml:"title"`
	Subject     string `xml:"subject"`
	Description string `xml:"description"`
	Keywords    string `xml:"keywords"`
}

// docxCoreProperties reads the title, description and keywords of the
// package. A package without core properties yields the zero value.
func docxCoreProperties(br *bytes.Reader) (doctree.FrontMatter, error) {
	var fm doctree.FrontMatter
	zr, err := zip.NewReader(br, br.Size())
	if err != nil {
		return fm, err
	}
	f, err := zr.Open("docProps/core.xml")
	if err != nil {
		return fm, nil
	}
	defer f.Close()

	var props coreProperties
	if err := xml.NewDecoder(f).Decode(&props); err != nil {
		return fm, fmt.Errorf("core properties: %w", err)
	}
	fm.Title = strings.TrimSpace(props.Title)
	fm.Description = strings.TrimSpace(props.Description)
	if fm.Description == "" {
		fm.Description = strings.TrimSpace(props.Subject)
	}
	fm.Tags = splitKeywords(props.Keywords)
	return fm, nil
}

// docxHeadingLevel maps the built-in "Heading1".."Heading6" styles, and
// their display names, to heading levels. "Title" counts as level 1.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	n, ok := strings.CutPrefix(style, "heading")
	if !ok || len(n) != 1 || n[0] < '1' || n[0] > '6' {
		return 0
	}
	return int(n[0] - '0')
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
