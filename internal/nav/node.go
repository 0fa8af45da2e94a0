// Package nav resolves sidebar declarations into validated, immutable
// navigation trees with breadcrumb lookup and previous/next paging.
package nav

import (
	"encoding/json"
	"fmt"
)

// Node is one entry of a sidebar declaration. The concrete types are
// DocRef, Category and ExternalLink.
type Node interface {
	node()
}

// DocRef points at a single content document.
type DocRef struct {
	ID    string // Content document id, e.g. "quickstart/with-go"
	Label string // Display label; resolved from the document title when empty
	Href  string // Permalink, filled in by Build
}

// Category groups child nodes, optionally with its own landing page.
type Category struct {
	Label       string
	Items       []Node
	Collapsed   bool
	Collapsible bool
	Link        Link
	Href        string // Landing page permalink, filled in by Build (empty for pure groupings)
}

// ExternalLink is rendered as-is and never resolved against content.
type ExternalLink struct {
	Label string
	Href  string
}

func (DocRef) node()       {}
func (Category) node()     {}
func (ExternalLink) node() {}

// LinkKind is the landing page policy of a category.
type LinkKind int

const (
	LinkNone LinkKind = iota
	LinkDoc
	LinkGeneratedIndex
)

func (k LinkKind) String() string {
	switch k {
	case LinkNone:
		return "none"
	case LinkDoc:
		return "doc"
	case LinkGeneratedIndex:
		return "generated-index"
	}
	return fmt.Sprintf("LinkKind(%d)", int(k))
}

// Link describes what a category's own page is.
type Link struct {
	Kind LinkKind

	// LinkDoc
	DocID string

	// LinkGeneratedIndex; all optional.
	Title       string
	Description string
	Slug        string
}

// HasPage reports whether a category with this link has content of its own.
func (l Link) HasPage() bool {
	return l.Kind == LinkDoc || l.Kind == LinkGeneratedIndex
}

func (d DocRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Label string `json:"label,omitempty"`
		Href  string `json:"href,omitempty"`
	}{"doc", d.ID, d.Label, d.Href})
}

func (c Category) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Node{}
	}
	type link struct {
		Type        string `json:"type"`
		ID          string `json:"id,omitempty"`
		Title       string `json:"title,omitempty"`
		Description string `json:"description,omitempty"`
		Slug        string `json:"slug,omitempty"`
	}
	var l *link
	if c.Link.Kind != LinkNone {
		l = &link{
			Type:        c.Link.Kind.String(),
			ID:          c.Link.DocID,
			Title:       c.Link.Title,
			Description: c.Link.Description,
			Slug:        c.Link.Slug,
		}
	}
	return json.Marshal(struct {
		Type        string `json:"type"`
		Label       string `json:"label"`
		Collapsed   bool   `json:"collapsed"`
		Collapsible bool   `json:"collapsible"`
		Link        *link  `json:"link,omitempty"`
		Href        string `json:"href,omitempty"`
		Items       []Node `json:"items"`
	}{"category", c.Label, c.Collapsed, c.Collapsible, l, c.Href, items})
}

func (e ExternalLink) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Label string `json:"label"`
		Href  string `json:"href"`
	}{"link", e.Label, e.Href})
}

// cloneNodes deep-copies a node slice so resolved trees never alias
// caller-owned declarations.
func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if c, ok := n.(Category); ok {
			c.Items = cloneNodes(c.Items)
			out[i] = c
			continue
		}
		out[i] = n
	}
	return out
}
