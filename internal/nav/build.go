package nav

import (
	"fmt"
	"slices"
)

// Sidebar is a named, unresolved declaration.
type Sidebar struct {
	Name  string
	Items []Node
}

// Build resolves one sidebar declaration against the known documents.
// Every violation is collected; if any is found the result is nil and the
// error is a *ValidationError.
func Build(name string, decl []Node, docs DocIndex, opts Options) (*Tree, error) {
	r := newResolver(docs, opts)
	t := r.tree(name, decl)
	if err := r.err(); err != nil {
		return nil, err
	}
	return t, nil
}

// resolver carries state across the sidebars of one build so uniqueness
// holds site-wide.
type resolver struct {
	docs  DocIndex
	opts  Options
	seen  map[string]Breadcrumb
	slugs map[string]Breadcrumb
	errs  []error

	// per tree
	cur *Tree
}

func newResolver(docs DocIndex, opts Options) *resolver {
	return &resolver{
		docs:  docs,
		opts:  opts.withDefaults(),
		seen:  make(map[string]Breadcrumb),
		slugs: make(map[string]Breadcrumb),
	}
}

func (r *resolver) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return &ValidationError{Errs: slices.Clone(r.errs)}
}

func (r *resolver) tree(name string, decl []Node) *Tree {
	t := &Tree{
		name:    name,
		crumbs:  make(map[string]Breadcrumb),
		pageAt:  make(map[string]int),
		indexes: make(map[string]GeneratedIndex),
	}
	r.cur = t
	t.items = r.walk(cloneNodes(decl), nil)
	r.cur = nil
	t.collectPages()
	return t
}

// walk resolves nodes depth-first in declaration order. path holds the
// labels of the enclosing categories.
func (r *resolver) walk(nodes []Node, path []string) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case DocRef:
			d, ok := r.place(n.ID, path)
			if !ok {
				if r.opts.OnBrokenRefs == Throw {
					out = append(out, n)
				}
				continue
			}
			if n.Label == "" {
				n.Label = d.Title
			}
			n.Href = d.Permalink
			out = append(out, n)
		case Category:
			if c, ok := r.category(n, path); ok {
				out = append(out, c)
			}
		case ExternalLink:
			out = append(out, n)
		default:
			r.errs = append(r.errs, fmt.Errorf("unsupported navigation node %T at %s", n, r.position(path)))
		}
	}
	return out
}

// category resolves children first so their errors come before the
// category's own link checks. It reports false when dropped references
// left the category with nothing to show, so it must be left out too.
func (r *resolver) category(c Category, path []string) (Category, bool) {
	inner := append(slices.Clone(path), c.Label)
	declared := len(c.Items)
	c.Items = r.walk(c.Items, inner)
	c.Href = ""
	dropped := len(c.Items) < declared

	if c.Link.Kind == LinkDoc {
		d, ok := r.place(c.Link.DocID, inner)
		if ok {
			c.Href = d.Permalink
		} else if r.opts.OnBrokenRefs != Throw {
			c.Link = Link{}
			dropped = true
		}
	}
	if dropped && len(c.Items) == 0 && c.Link.Kind != LinkDoc {
		if r.opts.OnBrokenRefs == Warn {
			r.opts.Log.Warn("dropping category left empty by unknown references", "label", c.Label, "position", r.position(path).String())
		}
		return c, false
	}

	switch c.Link.Kind {
	case LinkGeneratedIndex:
		if len(c.Items) == 0 {
			r.errs = append(r.errs, &EmptyGeneratedIndexError{Label: c.Label, Position: r.position(path)})
			break
		}
		gi, err := generatedIndex(c, r.docs, r.opts.IndexPrefix, false)
		if err != nil {
			r.errs = append(r.errs, err)
			break
		}
		here := r.position(inner)
		if prev, dup := r.slugs[gi.Slug]; dup {
			r.errs = append(r.errs, &DuplicateIndexError{Slug: gi.Slug, First: prev, Second: here})
			break
		}
		r.slugs[gi.Slug] = here
		r.cur.indexes[gi.Slug] = gi
		r.cur.slugs = append(r.cur.slugs, gi.Slug)
		c.Href = gi.Permalink
	case LinkNone:
		if len(c.Items) == 0 {
			r.errs = append(r.errs, &EmptyCategoryError{Label: c.Label, Position: r.position(path)})
		}
	}
	return c, true
}

// place validates a document reference and records its position.
func (r *resolver) place(docID string, path []string) (Doc, bool) {
	here := r.position(path)
	d, ok := r.docs.Doc(docID)
	if !ok {
		switch r.opts.OnBrokenRefs {
		case Warn:
			r.opts.Log.Warn("dropping reference to unknown document", "doc_id", docID, "position", here.String())
		case Ignore:
		default:
			r.errs = append(r.errs, &UnknownDocumentError{DocID: docID, Position: here})
		}
		return Doc{}, false
	}
	if prev, dup := r.seen[docID]; dup {
		r.errs = append(r.errs, &DuplicateDocumentError{DocID: docID, First: prev, Second: here})
		return d, true
	}
	r.seen[docID] = here
	r.cur.crumbs[docID] = here
	r.cur.docIDs = append(r.cur.docIDs, docID)
	return d, true
}

func (r *resolver) position(path []string) Breadcrumb {
	return Breadcrumb{Sidebar: r.cur.name, Path: slices.Clone(path)}.clone()
}

// collectPages flattens the resolved tree into previous/next order. A
// category's own page precedes its children; pure groupings and external
// links are skipped.
func (t *Tree) collectPages() {
	var visit func(nodes []Node)
	visit = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case DocRef:
				t.addPage(Page{Kind: PageDoc, DocID: n.ID, Label: n.Label, Href: n.Href})
			case Category:
				switch n.Link.Kind {
				case LinkDoc:
					t.addPage(Page{Kind: PageDoc, DocID: n.Link.DocID, Label: n.Label, Href: n.Href})
				case LinkGeneratedIndex:
					if gi, ok := t.indexes[indexSlug(n)]; ok {
						t.addPage(Page{Kind: PageGeneratedIndex, Slug: gi.Slug, Label: gi.Title, Href: gi.Permalink})
					}
				}
				visit(n.Items)
			}
		}
	}
	visit(t.items)
}

func (t *Tree) addPage(p Page) {
	key := p.DocID
	if p.Kind == PageGeneratedIndex {
		key = p.Slug
	}
	k := pageKey(p.Kind, key)
	if _, ok := t.pageAt[k]; ok {
		return
	}
	t.pageAt[k] = len(t.pages)
	t.pages = append(t.pages, p)
}
