package nav

import (
	"fmt"
	"log/slog"
	"strings"
)

// Strictness decides what happens to references to unknown documents.
type Strictness string

const (
	// Throw makes an unknown document a fatal validation error.
	Throw Strictness = "throw"
	// Warn logs the unknown reference and drops it from the tree.
	Warn Strictness = "warn"
	// Ignore drops the unknown reference silently.
	Ignore Strictness = "ignore"
)

// ParseStrictness parses a strictness level. The empty string means Throw;
// "log" is accepted as an alias for Warn.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "throw":
		return Throw, nil
	case "warn", "log":
		return Warn, nil
	case "ignore":
		return Ignore, nil
	}
	return "", fmt.Errorf("unknown broken reference policy %q (want throw, warn or ignore)", s)
}

// DefaultIndexPrefix is the permalink prefix of generated index pages.
const DefaultIndexPrefix = "/category/"

// Options controls resolution.
type Options struct {
	OnBrokenRefs Strictness
	IndexPrefix  string
	Log          *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.OnBrokenRefs == "" {
		o.OnBrokenRefs = Throw
	}
	if o.IndexPrefix == "" {
		o.IndexPrefix = DefaultIndexPrefix
	}
	if !strings.HasSuffix(o.IndexPrefix, "/") {
		o.IndexPrefix += "/"
	}
	if o.Log == nil {
		o.Log = slog.New(slog.DiscardHandler)
	}
	return o
}

// Doc is what the resolver needs to know about a content document.
type Doc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// DocIndex is the set of known content documents.
type DocIndex interface {
	Doc(id string) (Doc, bool)
}

// DocSet is a map-backed DocIndex.
type DocSet map[string]Doc

// NewDocSet returns a DocSet knowing the given ids, titled by id and
// linked at "/<id>".
func NewDocSet(ids ...string) DocSet {
	s := make(DocSet, len(ids))
	for _, id := range ids {
		s[id] = Doc{ID: id, Title: id, Permalink: "/" + id}
	}
	return s
}

func (s DocSet) Doc(id string) (Doc, bool) {
	d, ok := s[id]
	return d, ok
}
