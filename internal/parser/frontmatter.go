package parser

import (
	"bytes"
	"fmt"

	"github.com/dgallion1/docnav/internal/doctree"
	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// splitFrontMatter separates a leading "---" delimited YAML block from the
// body. Sources without one are returned unchanged.
func splitFrontMatter(src []byte) (doctree.FrontMatter, []byte, error) {
	var fm doctree.FrontMatter

	rest := bytes.TrimPrefix(src, []byte("\ufeff"))
	if !bytes.HasPrefix(rest, fence) {
		return fm, src, nil
	}
	firstLine, after, ok := bytes.Cut(rest, []byte("\n"))
	if !ok || len(bytes.TrimSpace(firstLine)) != len(fence) {
		return fm, src, nil
	}

	var block []byte
	body := after
	for {
		line, next, found := bytes.Cut(body, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			body = next
			break
		}
		if !found {
			return fm, src, fmt.Errorf("unterminated front matter")
		}
		block = append(block, line...)
		block = append(block, '\n')
		body = next
	}

	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, src, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, body, nil
}
