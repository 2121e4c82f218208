// Package ingest converts uploaded files to plain text for chunking
// and embedding. Extraction is dispatched by file extension; formats
// without an extractor yield empty text rather than an error so a
// single bad upload never fails a batch.
package ingest

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extractor converts raw file content to plain text.
type Extractor interface {
	Extract(content []byte) (string, error)
}

// PlainTextExtractor returns content as-is.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(content []byte) (string, error) {
	return string(content), nil
}

// extractors maps lowercase file extensions to their extractor.
var extractors = map[string]Extractor{
	".txt":  PlainTextExtractor{},
	".md":   MarkdownExtractor{},
	".html": HTMLExtractor{},
	".htm":  HTMLExtractor{},
	".pdf":  &PDFExtractor{},
	".docx": &DOCXExtractor{},
}

// ExtractText extracts plain text from content using the extractor
// registered for filename's extension. Unsupported extensions return
// empty text with no error. The result is Unicode NFC normalized.
func ExtractText(content []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := extractors[ext]
	if !ok {
		return "", nil
	}
	text, err := e.Extract(content)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(strings.TrimSpace(text)), nil
}
