package parser

import (
	"bytes"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/fumiama/go-docx"
	"github.com/google/go-cmp/cmp"
)

const handbookCore = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Mission Handbook</dc:title>
<dc:subject>Operating the launch pad</dc:subject>
<cp:keywords>launch; safety</cp:keywords>
</cp:coreProperties>`

// writeDOCX saves a document with the given paragraphs (style, text).
// A non-empty core replaces the package core properties.
func writeDOCX(t *testing.T, core string, paras ...[2]string) []byte {
	t.Helper()
	d := docx.New()
	if core != "" {
		fsys := fstest.MapFS{}
		for _, name := range docx.DefaultTemplateFilesList {
			data, err := fs.ReadFile(docx.TemplateXMLFS, "xml/default/"+name)
			if err != nil {
				t.Fatalf("read template %s: %v", name, err)
			}
			fsys["xml/handbook/"+name] = &fstest.MapFile{Data: data}
		}
		fsys["xml/handbook/docProps/core.xml"] = &fstest.MapFile{Data: []byte(core)}
		d.UseTemplate("handbook", docx.DefaultTemplateFilesList, fsys)
	}
	for _, p := range paras {
		para := d.AddParagraph()
		if p[0] != "" {
			para.Style(p[0])
		}
		para.AddText(p[1])
	}
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return buf.Bytes()
}

func TestDOCXParser_HeadingsAndCoreProperties(t *testing.T) {
	data := writeDOCX(t, handbookCore,
		[2]string{"", "Revision 3."},
		[2]string{"Heading1", "Pad Operations"},
		[2]string{"", "Read before every launch."},
		[2]string{"Heading2", "Checklist"},
		[2]string{"", "Fuel."},
		[2]string{"", "Power."},
		[2]string{"heading 3", "Backup power"},
		[2]string{"Heading2", "Recovery"},
	)

	tree, err := (&DOCXParser{}).Parse(bytes.NewReader(data), "handbook.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Mission Handbook" {
		t.Errorf("expected core title, got %q", tree.Title)
	}
	wantFM := doctree.FrontMatter{Title: "Mission Handbook", Description: "Operating the launch pad", Tags: []string{"launch", "safety"}}
	if diff := cmp.Diff(wantFM, tree.FrontMatter); diff != "" {
		t.Errorf("front matter mismatch (-want +got):\n%s", diff)
	}

	want := []*doctree.DocNode{
		{Text: "Revision 3."},
		{Title: "Pad Operations", Level: 1, Text: "Read before every launch.", Children: []*doctree.DocNode{
			{Title: "Checklist", Level: 2, Text: "Fuel.\n\nPower.", Children: []*doctree.DocNode{
				{Title: "Backup power", Level: 3},
			}},
			{Title: "Recovery", Level: 2},
		}},
	}
	if diff := cmp.Diff(want, tree.Children); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestDOCXParser_TitleFallbacks(t *testing.T) {
	data := writeDOCX(t, "", [2]string{"Heading1", "Pad Operations"}, [2]string{"", "Body."})
	tree, err := (&DOCXParser{}).Parse(bytes.NewReader(data), "pad.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Pad Operations" {
		t.Errorf("expected first heading as title, got %q", tree.Title)
	}

	data = writeDOCX(t, "", [2]string{"", "No headings here."})
	tree, err = (&DOCXParser{}).Parse(bytes.NewReader(data), "pad.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "pad" {
		t.Errorf("expected file name title, got %q", tree.Title)
	}
}

func TestDOCXParser_NotADocx(t *testing.T) {
	if _, err := (&DOCXParser{}).Parse(bytes.NewReader([]byte("not a zip")), "bad.docx"); err == nil {
		t.Fatal("expected error for a non-docx input")
	}
}

func TestDOCXHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 4", 4},
		{"Title", 1},
		{"Heading7", 0},
		{"Heading10", 0},
		{"BodyText", 0},
		{"", 0},
	}
	for _, tt := range tests {
		para := &docx.Paragraph{}
		if tt.style != "" {
			para.Style(tt.style)
		}
		if got := docxHeadingLevel(para); got != tt.want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}
