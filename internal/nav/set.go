package nav

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Set is every resolved sidebar of a site, in declaration order. A
// document appears in at most one of them.
type Set struct {
	trees  []*Tree
	byName map[string]*Tree
	byDoc  map[string]*Tree
}

// BuildSet resolves all sidebars in order. Violations from every sidebar
// are reported together in one *ValidationError.
func BuildSet(sidebars []Sidebar, docs DocIndex, opts Options) (*Set, error) {
	r := newResolver(docs, opts)
	s := &Set{
		byName: make(map[string]*Tree, len(sidebars)),
		byDoc:  make(map[string]*Tree),
	}
	for _, sb := range sidebars {
		if _, dup := s.byName[sb.Name]; dup {
			r.errs = append(r.errs, fmt.Errorf("sidebar %q declared twice", sb.Name))
			continue
		}
		t := r.tree(sb.Name, sb.Items)
		s.trees = append(s.trees, t)
		s.byName[sb.Name] = t
		for _, id := range t.docIDs {
			s.byDoc[id] = t
		}
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Names returns the sidebar names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.trees))
	for i, t := range s.trees {
		names[i] = t.name
	}
	return names
}

// Trees returns the resolved sidebars in declaration order.
func (s *Set) Trees() []*Tree { return slices.Clone(s.trees) }

// Tree returns the sidebar with the given name.
func (s *Set) Tree(name string) (*Tree, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// TreeFor returns the sidebar a document lives in.
func (s *Set) TreeFor(docID string) (*Tree, bool) {
	t, ok := s.byDoc[docID]
	return t, ok
}

// Lookup returns the breadcrumb of a document in whichever sidebar holds it.
func (s *Set) Lookup(docID string) (Breadcrumb, bool) {
	t, ok := s.byDoc[docID]
	if !ok {
		return Breadcrumb{}, false
	}
	return t.Lookup(docID)
}

// Pager returns previous/next pages for a document within its sidebar.
func (s *Set) Pager(docID string) (Pager, bool) {
	t, ok := s.byDoc[docID]
	if !ok {
		return Pager{}, false
	}
	return t.Pager(docID)
}

// GeneratedIndex finds a generated index page by slug in any sidebar.
func (s *Set) GeneratedIndex(slug string) (GeneratedIndex, *Tree, bool) {
	for _, t := range s.trees {
		if gi, ok := t.GeneratedIndex(slug); ok {
			return gi, t, true
		}
	}
	return GeneratedIndex{}, nil, false
}

func (s *Set) MarshalJSON() ([]byte, error) {
	trees := s.trees
	if trees == nil {
		trees = []*Tree{}
	}
	return json.Marshal(trees)
}
