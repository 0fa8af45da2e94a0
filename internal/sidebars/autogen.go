package sidebars

import (
	"path"
	"sort"
	"strings"

	"github.com/dgallion1/docnav/internal/nav"
)

// DocEntry is what autogeneration needs to know about a content document.
type DocEntry struct {
	ID       string
	Label    string  // Sidebar label override; empty means use the title
	Position float64 // sidebar_position; zero means unpositioned
}

// Autogenerate builds items for every document under dirName ("." for the
// whole docs tree). Documents directly in the directory become doc items;
// subdirectories become categories. A subdirectory's "index" document is
// its landing page, otherwise it gets a generated index. Positioned
// entries come first by position, the rest by name.
func Autogenerate(dirName string, docs []DocEntry) []nav.Node {
	dir := strings.Trim(path.Clean(dirName), "/")
	if dir == "." {
		dir = ""
	}
	return autogenerate(dir, docs)
}

type autoEntry struct {
	name     string
	position float64
	node     nav.Node
}

func autogenerate(dir string, docs []DocEntry) []nav.Node {
	var entries []autoEntry
	subdirs := make(map[string][]DocEntry)
	var subdirOrder []string

	for _, d := range docs {
		rel, ok := relativeTo(dir, d.ID)
		if !ok {
			continue
		}
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			sub := rel[:i]
			if _, seen := subdirs[sub]; !seen {
				subdirOrder = append(subdirOrder, sub)
			}
			subdirs[sub] = append(subdirs[sub], d)
			continue
		}
		entries = append(entries, autoEntry{
			name:     rel,
			position: d.Position,
			node:     nav.DocRef{ID: d.ID, Label: d.Label},
		})
	}

	for _, sub := range subdirOrder {
		full := path.Join(dir, sub)
		children := subdirs[sub]

		c := nav.Category{Label: sub, Collapsed: true, Collapsible: true}
		var position float64
		var rest []DocEntry
		for _, d := range children {
			if d.ID == full+"/index" {
				c.Link = nav.Link{Kind: nav.LinkDoc, DocID: d.ID}
				position = d.Position
				if d.Label != "" {
					c.Label = d.Label
				}
				continue
			}
			rest = append(rest, d)
		}
		c.Items = autogenerate(full, rest)
		if c.Link.Kind == nav.LinkNone {
			c.Link = nav.Link{Kind: nav.LinkGeneratedIndex, Slug: full}
		}
		entries = append(entries, autoEntry{name: sub, position: position, node: c})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.position != 0 && b.position != 0:
			if a.position != b.position {
				return a.position < b.position
			}
		case a.position != 0:
			return true
		case b.position != 0:
			return false
		}
		return a.name < b.name
	})

	out := make([]nav.Node, len(entries))
	for i, e := range entries {
		out[i] = e.node
	}
	return out
}

func relativeTo(dir, id string) (string, bool) {
	if dir == "" {
		return id, true
	}
	if !strings.HasPrefix(id, dir+"/") {
		return "", false
	}
	return strings.TrimPrefix(id, dir+"/"), true
}
