package sidebars

import (
	"testing"

	"github.com/dgallion1/docnav/internal/nav"
	"github.com/google/go-cmp/cmp"
)

func TestAutogenerate_Directory(t *testing.T) {
	docs := []DocEntry{
		{ID: "intro", Position: 1},
		{ID: "quickstart/with-java", Position: 3},
		{ID: "quickstart/with-cli", Position: 1},
		{ID: "quickstart/with-go", Position: 2},
		{ID: "datamodels/types"},
		{ID: "datamodels/schema"},
		{ID: "datamodels/index", Label: "Data Models"},
	}

	got := Autogenerate(".", docs)
	want := []nav.Node{
		nav.DocRef{ID: "intro"},
		nav.Category{
			Label:       "Data Models",
			Collapsed:   true,
			Collapsible: true,
			Link:        nav.Link{Kind: nav.LinkDoc, DocID: "datamodels/index"},
			Items: []nav.Node{
				nav.DocRef{ID: "datamodels/schema"},
				nav.DocRef{ID: "datamodels/types"},
			},
		},
		nav.Category{
			Label:       "quickstart",
			Collapsed:   true,
			Collapsible: true,
			Link:        nav.Link{Kind: nav.LinkGeneratedIndex, Slug: "quickstart"},
			Items: []nav.Node{
				nav.DocRef{ID: "quickstart/with-cli"},
				nav.DocRef{ID: "quickstart/with-go"},
				nav.DocRef{ID: "quickstart/with-java"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("autogenerated mismatch (-want +got):\n%s", diff)
	}
}

func TestAutogenerate_Subdirectory(t *testing.T) {
	docs := []DocEntry{
		{ID: "intro"},
		{ID: "guides/b"},
		{ID: "guides/a"},
		{ID: "guidesextra/c"},
	}
	got := Autogenerate("/guides/", docs)
	want := []nav.Node{
		nav.DocRef{ID: "guides/a"},
		nav.DocRef{ID: "guides/b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("autogenerated mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_AutogeneratedItem(t *testing.T) {
	input := `
docs:
  - intro
  - type: category
    label: Guides
    items:
      - type: autogenerated
        dirName: guides
`
	docs := []DocEntry{{ID: "intro"}, {ID: "guides/setup"}, {ID: "guides/deploy"}}
	got, err := Parse([]byte(input), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := got[0].Items[1].(nav.Category)
	want := []nav.Node{nav.DocRef{ID: "guides/deploy"}, nav.DocRef{ID: "guides/setup"}}
	if diff := cmp.Diff(want, c.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}
