package nav

import (
	"fmt"
	"strings"
)

// UnknownDocumentError reports a reference to a document the content
// store does not have.
type UnknownDocumentError struct {
	DocID    string
	Position Breadcrumb
}

func (e *UnknownDocumentError) Error() string {
	return fmt.Sprintf("unknown document %q at %s", e.DocID, e.Position)
}

// DuplicateDocumentError reports a document placed at more than one
// navigation position.
type DuplicateDocumentError struct {
	DocID  string
	First  Breadcrumb
	Second Breadcrumb
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("document %q appears more than once: at %s and at %s", e.DocID, e.First, e.Second)
}

// EmptyGeneratedIndexError reports a generated-index category with no
// children to index.
type EmptyGeneratedIndexError struct {
	Label    string
	Position Breadcrumb
}

func (e *EmptyGeneratedIndexError) Error() string {
	return fmt.Sprintf("category %q at %s requests a generated index but has no items", e.Label, e.Position)
}

// EmptyCategoryError reports a category with neither children nor a link.
type EmptyCategoryError struct {
	Label    string
	Position Breadcrumb
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("category %q at %s has neither items nor a link", e.Label, e.Position)
}

// DuplicateIndexError reports two generated indexes competing for one slug.
type DuplicateIndexError struct {
	Slug   string
	First  Breadcrumb
	Second Breadcrumb
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("generated index slug %q used twice: at %s and at %s", e.Slug, e.First, e.Second)
}

// ValidationError aggregates every violation found while resolving one or
// more sidebars, in walk order.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 1 {
		return "navigation: " + e.Errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "navigation: %d violations:", len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
