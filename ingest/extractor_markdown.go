package ingest

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

var _ Extractor = (*MarkdownExtractor)(nil)

// MarkdownExtractor implements Extractor for Markdown documents.
// The source is rendered to HTML with goldmark and then stripped to
// plain text, which handles links, emphasis, and nested structure
// without a hand-written markdown parser.
type MarkdownExtractor struct{}

func (MarkdownExtractor) Extract(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return stripHTML(buf.String()), nil
}
