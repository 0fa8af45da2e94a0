package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var exampleSite = filepath.Join("..", "..", "examples", "tigris")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_ExampleSite(t *testing.T) {
	out, err := run(t, "validate", "--site-dir", exampleSite)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "docs: 8 docs") || !strings.Contains(out, "ok: 8 documents indexed") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"site.yaml":     "title: Broken\n",
		"sidebars.yaml": "docs:\n  - a\n  - missing-doc\n  - a\n",
		"docs/a.md":     "# A\n",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		os.MkdirAll(filepath.Dir(p), 0o755)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "validate", "--site-dir", dir)
	if err == nil || !strings.Contains(err.Error(), "2 problem(s)") {
		t.Fatalf("expected 2 problems, got %v", err)
	}
	if !strings.Contains(out, "missing-doc") || strings.Count(out, "error: ") != 2 {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "validate", "--site-dir", dir, "--on-broken-refs", "ignore"); err == nil {
		t.Error("expected the duplicate to fail even when unknown refs are ignored")
	}
}

func TestLookupAndPager(t *testing.T) {
	out, err := run(t, "lookup", "datamodels/types", "--site-dir", exampleSite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "docs > Data Models" {
		t.Errorf("unexpected breadcrumb %q", out)
	}

	out, err = run(t, "pager", "intro", "--site-dir", exampleSite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "previous: -") || !strings.Contains(out, "next: Quickstart (/category/quickstart)") {
		t.Errorf("unexpected pager output:\n%s", out)
	}

	if _, err := run(t, "lookup", "nope", "--site-dir", exampleSite); err == nil {
		t.Error("expected error for a document outside every sidebar")
	}
}

func TestRender(t *testing.T) {
	out, err := run(t, "render", "docs", "--active", "intro", "--site-dir", exampleSite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, `<nav class="menu"`) || !strings.Contains(out, `href="/apidocs/"`) {
		t.Errorf("unexpected html:\n%s", out)
	}

	if _, err := run(t, "render", "api", "--site-dir", exampleSite); err == nil {
		t.Error("expected error for unknown sidebar")
	}
}
