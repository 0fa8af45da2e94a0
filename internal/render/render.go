// Package render turns resolved navigation into HTML fragments.
package render

import (
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/nav"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sidebar writes t as a nested <nav> menu. Categories holding the active
// document are expanded regardless of their collapsed default.
func Sidebar(w io.Writer, t *nav.Tree, activeDocID string) error {
	root := element(atom.Nav, "menu", "aria-label", t.Name())
	root.AppendChild(list(t.Items(), activeDocID))
	return html.Render(w, root)
}

func list(nodes []nav.Node, active string) *html.Node {
	ul := element(atom.Ul, "menu__list")
	for _, n := range nodes {
		li, _ := item(n, active)
		ul.AppendChild(li)
	}
	return ul
}

// item renders one node and reports whether it contains the active doc.
func item(n nav.Node, active string) (*html.Node, bool) {
	li := element(atom.Li, "menu__list-item")
	switch n := n.(type) {
	case nav.DocRef:
		isActive := n.ID == active
		li.AppendChild(link(n.Label, n.Href, isActive, false))
		return li, isActive

	case nav.ExternalLink:
		li.AppendChild(link(n.Label, n.Href, false, true))
		return li, false

	case nav.Category:
		containsActive := n.Link.Kind == nav.LinkDoc && n.Link.DocID == active
		ul := element(atom.Ul, "menu__list")
		for _, c := range n.Items {
			child, has := item(c, active)
			ul.AppendChild(child)
			containsActive = containsActive || has
		}

		var head *html.Node
		if n.Href != "" {
			head = link(n.Label, n.Href, n.Link.Kind == nav.LinkDoc && n.Link.DocID == active, false)
		} else {
			head = element(atom.Span, "menu__link")
			head.AppendChild(text(n.Label))
		}
		addClass(head, "menu__link--sublist")
		if n.Collapsible {
			addClass(head, "menu__link--sublist-caret")
		}

		if n.Collapsible && n.Collapsed && !containsActive {
			addClass(li, "menu__list-item--collapsed")
		}
		li.AppendChild(head)
		li.AppendChild(ul)
		return li, containsActive
	}
	return li, false
}

// GeneratedIndex writes the body of a synthesized category landing page.
func GeneratedIndex(w io.Writer, gi nav.GeneratedIndex) error {
	article := element(atom.Article, "generated-index")
	h1 := element(atom.H1, "")
	h1.AppendChild(text(gi.Title))
	article.AppendChild(h1)
	if gi.Description != "" {
		p := element(atom.P, "")
		p.AppendChild(text(gi.Description))
		article.AppendChild(p)
	}

	section := element(atom.Section, "cards")
	for _, e := range gi.Items {
		card := element(atom.Article, "card card--"+e.Kind)
		card.AppendChild(link(e.Label, e.Href, false, e.Kind == "link"))
		section.AppendChild(card)
	}
	article.AppendChild(section)
	return html.Render(w, article)
}

// Pager writes previous/next links. Missing sides are left out.
func Pager(w io.Writer, p nav.Pager) error {
	n := element(atom.Nav, "pagination-nav", "aria-label", "Docs pages")
	if p.Previous != nil {
		a := link(p.Previous.Label, p.Previous.Href, false, false)
		addClass(a, "pagination-nav__link--prev")
		n.AppendChild(a)
	}
	if p.Next != nil {
		a := link(p.Next.Label, p.Next.Href, false, false)
		addClass(a, "pagination-nav__link--next")
		n.AppendChild(a)
	}
	return html.Render(w, n)
}

// Breadcrumbs writes the ancestor labels followed by the current page label.
func Breadcrumbs(w io.Writer, b nav.Breadcrumb, current string) error {
	n := element(atom.Nav, "breadcrumbs", "aria-label", "Breadcrumbs")
	ul := element(atom.Ul, "breadcrumbs__list")
	for _, label := range append(append([]string{}, b.Path...), current) {
		li := element(atom.Li, "breadcrumbs__item")
		li.AppendChild(text(label))
		ul.AppendChild(li)
	}
	if last := ul.LastChild; last != nil {
		addClass(last, "breadcrumbs__item--active")
	}
	n.AppendChild(ul)
	return html.Render(w, n)
}

func link(label, href string, active, external bool) *html.Node {
	a := element(atom.A, "menu__link", "href", href)
	if active {
		addClass(a, "menu__link--active")
		a.Attr = append(a.Attr, html.Attribute{Key: "aria-current", Val: "page"})
	}
	if external {
		a.Attr = append(a.Attr,
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener noreferrer"},
		)
	}
	a.AppendChild(text(label))
	return a
}

// element creates a tag with an optional class and extra key/value attributes.
func element(a atom.Atom, class string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func addClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Key == "class" {
			n.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
