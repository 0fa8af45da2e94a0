package nav

import (
	"regexp"
	"strings"
)

// GeneratedIndex is a synthesized landing page listing a category's
// direct children.
type GeneratedIndex struct {
	Slug        string       `json:"slug"`
	Permalink   string       `json:"permalink"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Items       []IndexEntry `json:"items"`
}

// IndexEntry is one child listed on a generated index page.
type IndexEntry struct {
	Kind  string `json:"kind"` // "doc", "category" or "link"
	DocID string `json:"doc_id,omitempty"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ResolveGeneratedIndex synthesizes the landing page of a category from its
// direct children in declared order. Labels and targets of documents not
// already resolved are taken from docs; an unknown document is an
// *UnknownDocumentError. prefix is the permalink prefix of index pages.
func ResolveGeneratedIndex(c Category, docs DocIndex, prefix string) (GeneratedIndex, error) {
	return generatedIndex(c, docs, prefix, true)
}

func generatedIndex(c Category, docs DocIndex, prefix string, strict bool) (GeneratedIndex, error) {
	if prefix == "" {
		prefix = DefaultIndexPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	slug := indexSlug(c)
	gi := GeneratedIndex{
		Slug:        slug,
		Permalink:   prefix + slug,
		Title:       c.Link.Title,
		Description: c.Link.Description,
		Items:       make([]IndexEntry, 0, len(c.Items)),
	}
	if gi.Title == "" {
		gi.Title = c.Label
	}
	for _, n := range c.Items {
		switch n := n.(type) {
		case DocRef:
			e := IndexEntry{Kind: "doc", DocID: n.ID, Label: n.Label, Href: n.Href}
			if e.Href == "" || e.Label == "" {
				d, ok := docs.Doc(n.ID)
				if !ok && strict {
					return GeneratedIndex{}, &UnknownDocumentError{DocID: n.ID, Position: Breadcrumb{Path: []string{c.Label}}}
				}
				if e.Label == "" {
					e.Label = d.Title
				}
				if e.Href == "" {
					e.Href = d.Permalink
				}
			}
			gi.Items = append(gi.Items, e)
		case Category:
			gi.Items = append(gi.Items, IndexEntry{Kind: "category", Label: n.Label, Href: categoryTarget(n, docs, prefix)})
		case ExternalLink:
			gi.Items = append(gi.Items, IndexEntry{Kind: "link", Label: n.Label, Href: n.Href})
		}
	}
	return gi, nil
}

// categoryTarget is where a link to a category leads: its own page, or the
// first page found inside it.
func categoryTarget(c Category, docs DocIndex, prefix string) string {
	if c.Href != "" {
		return c.Href
	}
	switch c.Link.Kind {
	case LinkDoc:
		if d, ok := docs.Doc(c.Link.DocID); ok {
			return d.Permalink
		}
	case LinkGeneratedIndex:
		return prefix + indexSlug(c)
	}
	for _, n := range c.Items {
		switch n := n.(type) {
		case DocRef:
			if n.Href != "" {
				return n.Href
			}
			if d, ok := docs.Doc(n.ID); ok {
				return d.Permalink
			}
		case Category:
			if h := categoryTarget(n, docs, prefix); h != "" {
				return h
			}
		}
	}
	return ""
}

func indexSlug(c Category) string {
	if c.Link.Slug != "" {
		return strings.Trim(c.Link.Slug, "/")
	}
	return Slugify(c.Label)
}

var (
	nonSlug  = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns = regexp.MustCompile(`-+`)
)

// Slugify converts a label to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
