package nav

import (
	"encoding/json"
	"slices"
	"strings"
)

// Breadcrumb locates a node: the sidebar it lives in and the labels of its
// ancestor categories, outermost first. Path is empty for top-level nodes.
type Breadcrumb struct {
	Sidebar string   `json:"sidebar"`
	Path    []string `json:"path"`
}

func (b Breadcrumb) String() string {
	parts := make([]string, 0, len(b.Path)+1)
	if b.Sidebar != "" {
		parts = append(parts, b.Sidebar)
	}
	parts = append(parts, b.Path...)
	if len(parts) == 0 {
		return "top level"
	}
	return strings.Join(parts, " > ")
}

func (b Breadcrumb) clone() Breadcrumb {
	b.Path = slices.Clone(b.Path)
	if b.Path == nil {
		b.Path = []string{}
	}
	return b
}

// PageKind says what kind of page a navigation step lands on.
type PageKind string

const (
	PageDoc            PageKind = "doc"
	PageGeneratedIndex PageKind = "generated-index"
)

// Page is one stop in previous/next navigation.
type Page struct {
	Kind  PageKind `json:"kind"`
	DocID string   `json:"doc_id,omitempty"`
	Slug  string   `json:"slug,omitempty"`
	Label string   `json:"label"`
	Href  string   `json:"href"`
}

// Pager holds the pages before and after a document. Either may be nil.
type Pager struct {
	Previous *Page `json:"previous"`
	Next     *Page `json:"next"`
}

// Tree is a resolved, immutable sidebar. All methods are safe for
// concurrent use.
type Tree struct {
	name    string
	items   []Node
	crumbs  map[string]Breadcrumb
	docIDs  []string
	pages   []Page
	pageAt  map[string]int
	indexes map[string]GeneratedIndex
	slugs   []string
}

// Name returns the sidebar name.
func (t *Tree) Name() string { return t.name }

// Items returns a copy of the top-level nodes.
func (t *Tree) Items() []Node { return cloneNodes(t.items) }

// DocIDs returns every document placed in the tree, in walk order.
func (t *Tree) DocIDs() []string { return slices.Clone(t.docIDs) }

// Lookup returns the breadcrumb of a document. Absence is not an error.
func (t *Tree) Lookup(docID string) (Breadcrumb, bool) {
	b, ok := t.crumbs[docID]
	if !ok {
		return Breadcrumb{}, false
	}
	return b.clone(), true
}

// Pages returns the previous/next sequence: every doc and every category
// landing page in walk order.
func (t *Tree) Pages() []Page { return slices.Clone(t.pages) }

// Pager returns the pages immediately before and after docID.
func (t *Tree) Pager(docID string) (Pager, bool) {
	i, ok := t.pageAt[pageKey(PageDoc, docID)]
	if !ok {
		return Pager{}, false
	}
	return t.pagerAt(i), true
}

// IndexPager returns the pages around the generated index with the given slug.
func (t *Tree) IndexPager(slug string) (Pager, bool) {
	i, ok := t.pageAt[pageKey(PageGeneratedIndex, slug)]
	if !ok {
		return Pager{}, false
	}
	return t.pagerAt(i), true
}

func (t *Tree) pagerAt(i int) Pager {
	var p Pager
	if i > 0 {
		prev := t.pages[i-1]
		p.Previous = &prev
	}
	if i+1 < len(t.pages) {
		next := t.pages[i+1]
		p.Next = &next
	}
	return p
}

// GeneratedIndex returns the synthesized landing page for slug.
func (t *Tree) GeneratedIndex(slug string) (GeneratedIndex, bool) {
	gi, ok := t.indexes[slug]
	if !ok {
		return GeneratedIndex{}, false
	}
	gi.Items = slices.Clone(gi.Items)
	return gi, true
}

// GeneratedIndexes returns every generated index in walk order.
func (t *Tree) GeneratedIndexes() []GeneratedIndex {
	out := make([]GeneratedIndex, 0, len(t.slugs))
	for _, slug := range t.slugs {
		gi, _ := t.GeneratedIndex(slug)
		out = append(out, gi)
	}
	return out
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	items := t.items
	if items == nil {
		items = []Node{}
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Items []Node `json:"items"`
	}{t.name, items})
}

func pageKey(kind PageKind, key string) string {
	return string(kind) + ":" + key
}
