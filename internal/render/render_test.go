package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/nav"
	"golang.org/x/net/html"
)

func buildTree(t *testing.T) *nav.Tree {
	t.Helper()
	decl := []nav.Node{
		nav.DocRef{ID: "intro"},
		nav.Category{
			Label:       "Data Models",
			Collapsed:   true,
			Collapsible: true,
			Link:        nav.Link{Kind: nav.LinkGeneratedIndex},
			Items: []nav.Node{
				nav.DocRef{ID: "datamodels/overview"},
				nav.DocRef{ID: "datamodels/schema"},
			},
		},
		nav.Category{
			Label:       "Reference",
			Collapsed:   true,
			Collapsible: true,
			Items:       []nav.Node{nav.DocRef{ID: "reference/limits"}},
		},
		nav.ExternalLink{Label: "HTTP API", Href: "https://example.com/api"},
	}
	docs := nav.NewDocSet("intro", "datamodels/overview", "datamodels/schema", "reference/limits")
	tree, err := nav.Build("docs", decl, docs, nav.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

// findAll returns every element with the given tag under n.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parseFragment(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("rendered output does not parse: %v", err)
	}
	return doc
}

func TestSidebar_Structure(t *testing.T) {
	var buf bytes.Buffer
	if err := Sidebar(&buf, buildTree(t), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseFragment(t, buf.String())

	navs := findAll(doc, "nav")
	if len(navs) != 1 || attr(navs[0], "aria-label") != "docs" {
		t.Fatalf("expected one nav labelled docs, got %s", buf.String())
	}

	var hrefs []string
	for _, a := range findAll(doc, "a") {
		hrefs = append(hrefs, attr(a, "href"))
	}
	want := []string{"/intro", "/category/data-models", "/datamodels/overview", "/datamodels/schema", "/reference/limits", "https://example.com/api"}
	if strings.Join(hrefs, ",") != strings.Join(want, ",") {
		t.Errorf("hrefs = %v, want %v", hrefs, want)
	}

	if got := len(findAll(doc, "span")); got != 1 {
		t.Errorf("expected one span heading for the pure grouping, got %d", got)
	}

	collapsed := 0
	for _, li := range findAll(doc, "li") {
		if strings.Contains(attr(li, "class"), "menu__list-item--collapsed") {
			collapsed++
		}
	}
	if collapsed != 2 {
		t.Errorf("expected 2 collapsed categories, got %d", collapsed)
	}

	if !strings.Contains(buf.String(), `rel="noopener noreferrer"`) {
		t.Error("expected external link to open safely in a new tab")
	}
}

func TestSidebar_ActiveDocExpandsAncestors(t *testing.T) {
	var buf bytes.Buffer
	if err := Sidebar(&buf, buildTree(t), "datamodels/schema"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseFragment(t, buf.String())

	collapsed := 0
	for _, li := range findAll(doc, "li") {
		if strings.Contains(attr(li, "class"), "menu__list-item--collapsed") {
			collapsed++
		}
	}
	if collapsed != 1 {
		t.Errorf("expected only the Reference category to stay collapsed, got %d", collapsed)
	}

	var active []string
	for _, a := range findAll(doc, "a") {
		if attr(a, "aria-current") == "page" {
			active = append(active, attr(a, "href"))
		}
	}
	if len(active) != 1 || active[0] != "/datamodels/schema" {
		t.Errorf("unexpected active links %v", active)
	}
}

func TestSidebar_EscapesLabels(t *testing.T) {
	tree, err := nav.Build("docs", []nav.Node{nav.DocRef{ID: "a", Label: "<script>x</script>"}}, nav.NewDocSet("a"), nav.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := Sidebar(&buf, tree, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Errorf("label was not escaped: %s", buf.String())
	}
}

func TestGeneratedIndex(t *testing.T) {
	tree := buildTree(t)
	gi, ok := tree.GeneratedIndex("data-models")
	if !ok {
		t.Fatal("expected generated index data-models")
	}
	gi.Description = "Collections & schemas"

	var buf bytes.Buffer
	if err := GeneratedIndex(&buf, gi); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseFragment(t, buf.String())

	h1 := findAll(doc, "h1")
	if len(h1) != 1 || h1[0].FirstChild.Data != "Data Models" {
		t.Errorf("unexpected heading in %s", buf.String())
	}
	if !strings.Contains(buf.String(), "Collections &amp; schemas") {
		t.Errorf("expected escaped description, got %s", buf.String())
	}
	if got := len(findAll(doc, "a")); got != 2 {
		t.Errorf("expected 2 cards, got %d", got)
	}
}

func TestPager(t *testing.T) {
	tree := buildTree(t)
	p, ok := tree.Pager("intro")
	if !ok {
		t.Fatal("expected pager for intro")
	}

	var buf bytes.Buffer
	if err := Pager(&buf, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "pagination-nav__link--prev") {
		t.Errorf("first page should have no previous link: %s", out)
	}
	if !strings.Contains(out, `href="/category/data-models"`) {
		t.Errorf("expected next link to the generated index: %s", out)
	}
}

func TestBreadcrumbs(t *testing.T) {
	var buf bytes.Buffer
	b := nav.Breadcrumb{Sidebar: "docs", Path: []string{"Data Models"}}
	if err := Breadcrumbs(&buf, b, "Schema"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseFragment(t, buf.String())
	items := findAll(doc, "li")
	if len(items) != 2 {
		t.Fatalf("expected 2 crumbs, got %d", len(items))
	}
	if !strings.Contains(attr(items[1], "class"), "breadcrumbs__item--active") {
		t.Errorf("expected last crumb to be active")
	}
}
