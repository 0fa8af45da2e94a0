// Package sidebars decodes authored sidebar files into navigation
// declarations.
package sidebars

import (
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/docnav/internal/nav"
	"gopkg.in/yaml.v3"
)

// DecodeError locates a malformed item in a sidebars file.
type DecodeError struct {
	Sidebar string
	Item    string // e.g. "[2].items[0]"
	Line    int
	Msg     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sidebar %s%s (line %d): %s", e.Sidebar, e.Item, e.Line, e.Msg)
}

// Load reads and decodes a sidebars file. docs feeds autogenerated items
// and may be nil when the file has none.
func Load(path string, docs []DocEntry) ([]nav.Sidebar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidebars %s: %w", path, err)
	}
	sbs, err := Parse(data, docs)
	if err != nil {
		return nil, fmt.Errorf("parse sidebars %s: %w", path, err)
	}
	return sbs, nil
}

// Parse decodes a sidebars document: a mapping from sidebar name to item
// list. JSON is accepted as well. Sidebar order follows the document.
func Parse(data []byte, docs []DocEntry) ([]nav.Sidebar, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: sidebars must be a mapping of name to items", root.Line)
	}

	d := &decoder{docs: docs}
	var out []nav.Sidebar
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		d.sidebar = name
		items, err := d.items(root.Content[i+1], "")
		if err != nil {
			return nil, err
		}
		out = append(out, nav.Sidebar{Name: name, Items: items})
	}
	return out, nil
}

type decoder struct {
	sidebar string
	docs    []DocEntry
}

type rawItem struct {
	Type        string    `yaml:"type"`
	ID          string    `yaml:"id"`
	Label       string    `yaml:"label"`
	Href        string    `yaml:"href"`
	Collapsed   *bool     `yaml:"collapsed"`
	Collapsible *bool     `yaml:"collapsible"`
	Link        *rawLink  `yaml:"link"`
	Items       yaml.Node `yaml:"items"`
	DirName     string    `yaml:"dirName"`
}

type rawLink struct {
	Type        string `yaml:"type"`
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Slug        string `yaml:"slug"`
}

func (d *decoder) fail(n *yaml.Node, at, format string, args ...any) error {
	return &DecodeError{Sidebar: d.sidebar, Item: at, Line: n.Line, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) items(n *yaml.Node, at string) ([]nav.Node, error) {
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, at, "items must be a list")
	}
	out := make([]nav.Node, 0, len(n.Content))
	for i, c := range n.Content {
		pos := fmt.Sprintf("%s[%d]", at, i)
		nodes, err := d.item(c, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// item decodes one entry. An autogenerated entry may expand to many nodes.
func (d *decoder) item(n *yaml.Node, at string) ([]nav.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		id := strings.TrimSpace(n.Value)
		if id == "" {
			return nil, d.fail(n, at, "empty doc id")
		}
		return []nav.Node{nav.DocRef{ID: id}}, nil
	case yaml.MappingNode:
	default:
		return nil, d.fail(n, at, "item must be a doc id or a mapping")
	}

	if isShorthandCategory(n) {
		label := n.Content[0].Value
		items, err := d.items(n.Content[1], at+".items")
		if err != nil {
			return nil, err
		}
		return []nav.Node{nav.Category{Label: label, Items: items, Collapsed: true, Collapsible: true}}, nil
	}

	var raw rawItem
	if err := n.Decode(&raw); err != nil {
		return nil, d.fail(n, at, "%v", err)
	}

	switch raw.Type {
	case "doc":
		if raw.ID == "" {
			return nil, d.fail(n, at, "doc requires id")
		}
		return []nav.Node{nav.DocRef{ID: raw.ID, Label: raw.Label}}, nil

	case "link":
		if raw.Href == "" || raw.Label == "" {
			return nil, d.fail(n, at, "link requires label and href")
		}
		return []nav.Node{nav.ExternalLink{Label: raw.Label, Href: raw.Href}}, nil

	case "category":
		if raw.Label == "" {
			return nil, d.fail(n, at, "category requires label")
		}
		items, err := d.items(&raw.Items, at+".items")
		if err != nil {
			return nil, err
		}
		link, err := d.link(n, at, raw.Link)
		if err != nil {
			return nil, err
		}
		c := nav.Category{
			Label:       raw.Label,
			Items:       items,
			Collapsed:   true,
			Collapsible: true,
			Link:        link,
		}
		if raw.Collapsible != nil {
			c.Collapsible = *raw.Collapsible
		}
		if raw.Collapsed != nil {
			c.Collapsed = *raw.Collapsed
		}
		if !c.Collapsible {
			c.Collapsed = false
		}
		return []nav.Node{c}, nil

	case "autogenerated":
		if raw.DirName == "" {
			return nil, d.fail(n, at, "autogenerated requires dirName")
		}
		return Autogenerate(raw.DirName, d.docs), nil

	case "":
		return nil, d.fail(n, at, "item has no type")
	}
	return nil, d.fail(n, at, "unknown item type %q", raw.Type)
}

func (d *decoder) link(n *yaml.Node, at string, raw *rawLink) (nav.Link, error) {
	if raw == nil {
		return nav.Link{}, nil
	}
	switch raw.Type {
	case "doc":
		if raw.ID == "" {
			return nav.Link{}, d.fail(n, at, "doc link requires id")
		}
		return nav.Link{Kind: nav.LinkDoc, DocID: raw.ID}, nil
	case "generated-index":
		return nav.Link{
			Kind:        nav.LinkGeneratedIndex,
			Title:       raw.Title,
			Description: raw.Description,
			Slug:        raw.Slug,
		}, nil
	}
	return nav.Link{}, d.fail(n, at, "unknown category link type %q", raw.Type)
}

// itemFields are the keys of a full item mapping. None of them can be a
// shorthand category label.
var itemFields = map[string]bool{
	"type": true, "id": true, "label": true, "href": true, "link": true,
	"items": true, "dirName": true, "collapsed": true, "collapsible": true,
}

// isShorthandCategory matches {"Label": [items...]}.
func isShorthandCategory(n *yaml.Node) bool {
	return len(n.Content) == 2 &&
		!itemFields[n.Content[0].Value] &&
		n.Content[1].Kind == yaml.SequenceNode
}
