package content

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/nav"
	"github.com/google/go-cmp/cmp"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestScan_IndexesDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"intro.md":                 "# Introduction\n\nWelcome.\n",
		"quickstart/with-go.md":    "---\nsidebar_label: Go\nsidebar_position: 2\n---\n# Quickstart with Go\n\n## Install\n\ngo get\n",
		"quickstart/cli.md":        "---\nid: with-cli\ntitle: CLI\n---\nbody\n",
		"datamodels/overview.html": "<html><head><title>Overview</title></head><body><p>x</p></body></html>",
		"datamodels/notes.txt":     "plain notes",
		"datamodels/draft.md":      "---\ndraft: true\n---\nnot yet\n",
		"_partials/snippet.md":     "# Partial\n",
		"quickstart/_hidden.md":    "# Hidden\n",
		"img/logo.svg":             "<svg/>",
		".drafts/secret.md":        "# Secret\n",
	})

	s, err := Scan(context.Background(), dir, Options{DocsRoot: "/docs/"}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []string
	for _, d := range s.Docs() {
		ids = append(ids, d.ID)
	}
	want := []string{"datamodels/notes", "datamodels/overview", "intro", "quickstart/with-cli", "quickstart/with-go"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	goDoc, ok := s.Get("quickstart/with-go")
	if !ok {
		t.Fatal("expected quickstart/with-go")
	}
	if goDoc.Title != "Quickstart with Go" || goDoc.SidebarLabel != "Go" || goDoc.SidebarPosition != 2 {
		t.Errorf("unexpected doc %+v", goDoc)
	}
	if goDoc.Permalink != "/docs/quickstart/with-go" {
		t.Errorf("unexpected permalink %q", goDoc.Permalink)
	}
	if len(goDoc.TOC) != 1 || goDoc.TOC[0].Title != "Install" {
		t.Errorf("unexpected toc %+v", goDoc.TOC)
	}
	if goDoc.WordCount == 0 || goDoc.ReadingTime != 1 {
		t.Errorf("unexpected reading stats %d words, %d min", goDoc.WordCount, goDoc.ReadingTime)
	}

	navDoc, ok := s.Doc("quickstart/with-go")
	if !ok || navDoc.Title != "Go" {
		t.Errorf("expected nav title to be the sidebar label, got %+v", navDoc)
	}
	if _, ok := s.Doc("datamodels/draft"); ok {
		t.Error("expected drafts to be excluded")
	}
}

func TestScan_TextDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ops/runbook.txt": "---\nid: pad-runbook\nslug: /runbook\ndescription: Pad duties\n---\nPad Runbook\n===========\n\nStart here.\n\n## Fueling\n\nSlowly.\n",
		"ops/notes.txt":   "Loose notes without headings.\n",
		"ops/later.txt":   "---\ndraft: true\n---\nsoon\n",
	})

	s, err := Scan(context.Background(), dir, Options{DocsRoot: "/docs/"}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runbook, ok := s.Get("ops/pad-runbook")
	if !ok {
		t.Fatalf("expected front matter id to name the doc, got %v", s.Docs())
	}
	if runbook.Title != "Pad Runbook" || runbook.Description != "Pad duties" || runbook.Permalink != "/runbook" {
		t.Errorf("unexpected runbook %+v", runbook)
	}
	if len(runbook.TOC) != 1 || runbook.TOC[0].Anchor != "fueling" {
		t.Errorf("unexpected toc %+v", runbook.TOC)
	}

	notes, ok := s.Get("ops/notes")
	if !ok || notes.Title != "notes" || notes.Permalink != "/docs/ops/notes" {
		t.Errorf("expected file name title and default permalink, got %+v", notes)
	}
	if _, ok := s.Get("ops/later"); ok {
		t.Error("expected text drafts to be excluded")
	}
}

func TestScan_BrokenPDFFailsScan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"manual.pdf": "not really a pdf"})
	_, err := Scan(context.Background(), dir, Options{}, discard())
	if err == nil || !strings.Contains(err.Error(), "manual.pdf") {
		t.Fatalf("expected parse error naming manual.pdf, got %v", err)
	}
}

func TestScan_IncludeDrafts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"draft.md": "---\ndraft: true\n---\nsoon\n"})

	s, err := Scan(context.Background(), dir, Options{IncludeDrafts: true}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Doc("draft"); !ok {
		t.Error("expected draft to be included")
	}
}

func TestScan_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"guide.md":   "# Guide\n",
		"guide.html": "<h1>Guide</h1>",
	})
	_, err := Scan(context.Background(), dir, Options{}, discard())
	if err == nil || !strings.Contains(err.Error(), `"guide"`) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestScan_ParseErrorFailsScan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bad.md": "---\ntitle: [oops\n---\n"})
	_, err := Scan(context.Background(), dir, Options{}, discard())
	if err == nil || !strings.Contains(err.Error(), "bad.md") {
		t.Fatalf("expected parse error naming bad.md, got %v", err)
	}
}

func TestScan_MissingDir(t *testing.T) {
	if _, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{}, discard()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScan_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "# A\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, dir, Options{}, discard()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDocID(t *testing.T) {
	tests := []struct {
		rel, fmID, want string
	}{
		{"intro.md", "", "intro"},
		{"quickstart/with-go.mdx", "", "quickstart/with-go"},
		{"quickstart/cli.md", "with-cli", "quickstart/with-cli"},
		{"top.md", "renamed", "renamed"},
	}
	for _, tt := range tests {
		if got := DocID(tt.rel, tt.fmID); got != tt.want {
			t.Errorf("DocID(%q, %q) = %q, want %q", tt.rel, tt.fmID, got, tt.want)
		}
	}
}

func TestPermalink(t *testing.T) {
	tests := []struct {
		root, id, slug, want string
	}{
		{"/", "intro", "", "/intro"},
		{"/docs/", "quickstart/with-go", "", "/docs/quickstart/with-go"},
		{"/docs", "quickstart/with-go", "go", "/docs/quickstart/go"},
		{"/", "quickstart/with-go", "/go-quickstart", "/go-quickstart"},
		{"/", "index", "", "/"},
		{"/", "guides/index", "", "/guides"},
	}
	for _, tt := range tests {
		if got := permalink(tt.root, tt.id, tt.slug); got != tt.want {
			t.Errorf("permalink(%q, %q, %q) = %q, want %q", tt.root, tt.id, tt.slug, got, tt.want)
		}
	}
}

func TestStore_ImplementsDocIndex(t *testing.T) {
	s, err := New([]Doc{
		{ID: "intro", Title: "Intro", Permalink: "/intro"},
		{ID: "guide", Title: "Guide", Permalink: "/guide"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, err := nav.Build("docs", []nav.Node{nav.DocRef{ID: "intro"}, nav.DocRef{ID: "guide"}}, s, nav.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := tree.Items()
	if got := items[0].(nav.DocRef).Label; got != "Intro" {
		t.Errorf("expected label Intro, got %q", got)
	}

	entries := s.SidebarEntries()
	if len(entries) != 2 || entries[0].ID != "guide" {
		t.Errorf("unexpected sidebar entries %+v", entries)
	}
}
