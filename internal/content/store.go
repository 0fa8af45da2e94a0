// Package content indexes the documents of a docs directory.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/nav"
	"github.com/dgallion1/docnav/internal/parser"
	"github.com/dgallion1/docnav/internal/sidebars"
	"golang.org/x/sync/errgroup"
)

// Doc is one indexed content document.
type Doc struct {
	ID              string            `json:"id"`
	Source          string            `json:"source"` // Path relative to the docs directory
	Title           string            `json:"title"`
	SidebarLabel    string            `json:"sidebar_label,omitempty"`
	SidebarPosition float64           `json:"sidebar_position,omitempty"`
	Description     string            `json:"description,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Permalink       string            `json:"permalink"`
	TOC             []doctree.Heading `json:"toc,omitempty"`
	WordCount       int               `json:"word_count"`
	ReadingTime     int               `json:"reading_time_min"`
}

// Options controls a scan.
type Options struct {
	// DocsRoot is the URL prefix of document permalinks, e.g. "/docs/".
	DocsRoot string
	// Concurrency bounds parallel parsing; <= 0 means 4.
	Concurrency int
	// TOCMaxLevel is the deepest heading level kept in Doc.TOC; <= 0 means 3.
	TOCMaxLevel int
	// IncludeDrafts keeps documents marked draft in front matter.
	IncludeDrafts bool
	// PDFFallbackPdftotext retries PDF text extraction with pdftotext.
	PDFFallbackPdftotext bool
}

// Store is an immutable index of content documents. It implements
// nav.DocIndex.
type Store struct {
	docs []Doc // sorted by ID
	byID map[string]int
}

// Scan walks dir and parses every supported file. Unsupported files are
// skipped; a file that fails to parse fails the scan.
func Scan(ctx context.Context, dir string, opts Options, log *slog.Logger) (*Store, error) {
	if opts.DocsRoot == "" {
		opts.DocsRoot = "/"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.TOCMaxLevel <= 0 {
		opts.TOCMaxLevel = 3
	}

	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), "_") || !parser.IsSupportedExtension(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs dir %s: %w", dir, err)
	}
	sort.Strings(files)

	parsed := make([]*Doc, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := parseFile(dir, rel, opts)
			if err != nil {
				return err
			}
			parsed[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]Doc, 0, len(parsed))
	for _, d := range parsed {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	s, err := New(docs)
	if err != nil {
		return nil, err
	}

	log.Info("content scanned", "dir", dir, "files", len(files), "docs", len(s.docs))
	return s, nil
}

// parseFile returns nil for drafts that are excluded.
func parseFile(dir, rel string, opts Options) (*Doc, error) {
	p, err := parser.ForFile(rel)
	if err != nil {
		return nil, err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = opts.PDFFallbackPdftotext
	}

	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rel, err)
	}
	defer f.Close()

	tree, err := p.Parse(f, path.Base(rel))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}
	fm := tree.FrontMatter
	if fm.Draft && !opts.IncludeDrafts {
		return nil, nil
	}

	id := DocID(rel, fm.ID)
	doc := &Doc{
		ID:              id,
		Source:          rel,
		Title:           tree.Title,
		SidebarLabel:    fm.SidebarLabel,
		SidebarPosition: fm.SidebarPosition,
		Description:     fm.Description,
		Tags:            fm.Tags,
		Permalink:       permalink(opts.DocsRoot, id, fm.Slug),
		TOC:             tree.Outline(opts.TOCMaxLevel),
		WordCount:       tree.Words(),
	}
	doc.ReadingTime = doctree.ReadingTime(doc.WordCount)
	return doc, nil
}

// DocID derives a document id from its path relative to the docs
// directory: the slash path without extension, with the last segment
// replaced by the front matter id when one is set.
func DocID(rel, frontMatterID string) string {
	rel = filepath.ToSlash(rel)
	id := strings.TrimSuffix(rel, path.Ext(rel))
	if frontMatterID == "" {
		return id
	}
	if dir := path.Dir(id); dir != "." {
		return dir + "/" + frontMatterID
	}
	return frontMatterID
}

func permalink(root, id, slug string) string {
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	switch {
	case strings.HasPrefix(slug, "/"):
		return root + strings.TrimPrefix(slug, "/")
	case slug != "":
		if dir := path.Dir(id); dir != "." {
			return root + dir + "/" + slug
		}
		return root + slug
	}
	if id == "index" {
		return root
	}
	return root + strings.TrimSuffix(id, "/index")
}

// New builds a store from already-indexed documents. Ids must be unique.
func New(docs []Doc) (*Store, error) {
	sorted := make([]Doc, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	s := &Store{docs: sorted, byID: make(map[string]int, len(sorted))}
	for i, d := range sorted {
		if prev, dup := s.byID[d.ID]; dup {
			return nil, fmt.Errorf("document id %q defined by both %s and %s", d.ID, sorted[prev].Source, d.Source)
		}
		s.byID[d.ID] = i
	}
	return s, nil
}

// Doc implements nav.DocIndex. The navigation title is the sidebar label
// when the document sets one.
func (s *Store) Doc(id string) (nav.Doc, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nav.Doc{}, false
	}
	d := s.docs[i]
	title := d.Title
	if d.SidebarLabel != "" {
		title = d.SidebarLabel
	}
	return nav.Doc{ID: d.ID, Title: title, Permalink: d.Permalink}, true
}

// Get returns the full record of a document.
func (s *Store) Get(id string) (Doc, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Doc{}, false
	}
	return s.docs[i], true
}

// Docs returns every document sorted by id.
func (s *Store) Docs() []Doc {
	out := make([]Doc, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of indexed documents.
func (s *Store) Len() int { return len(s.docs) }

// SidebarEntries lists documents for autogenerated sidebar items.
func (s *Store) SidebarEntries() []sidebars.DocEntry {
	out := make([]sidebars.DocEntry, len(s.docs))
	for i, d := range s.docs {
		out[i] = sidebars.DocEntry{ID: d.ID, Label: d.SidebarLabel, Position: d.SidebarPosition}
	}
	return out
}
