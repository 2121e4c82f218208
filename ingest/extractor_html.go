package ingest

import (
	"html"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

var _ Extractor = (*HTMLExtractor)(nil)

// HTMLExtractor implements Extractor for HTML documents. It runs
// readability article extraction first and falls back to plain tag
// stripping when the page has no identifiable article body.
type HTMLExtractor struct{}

func (HTMLExtractor) Extract(content []byte) (string, error) {
	src := string(content)

	// Uploaded files have no origin URL; readability still wants one
	// for resolving relative links.
	pageURL, _ := url.Parse("file:///upload")
	article, err := readability.FromReader(strings.NewReader(src), pageURL)
	if err == nil && article.TextContent != "" {
		return strings.TrimSpace(article.TextContent), nil
	}

	return stripHTML(src), nil
}

// stripHTML removes HTML tags along with script and style bodies.
// Block-level tags become newlines so paragraph boundaries survive.
func stripHTML(content string) string {
	var result strings.Builder
	result.Grow(len(content))

	inTag := false
	inScript := false
	inStyle := false
	var tagName strings.Builder
	collectingTagName := false

	i := 0
	for i < len(content) {
		r, size := utf8.DecodeRuneInString(content[i:])

		if r == '<' {
			inTag = true
			tagName.Reset()
			collectingTagName = true
			i += size
			continue
		}

		if inTag {
			if collectingTagName {
				if unicode.IsSpace(r) || r == '>' || (r == '/' && tagName.Len() > 0) {
					collectingTagName = false
					lower := strings.ToLower(tagName.String())
					switch lower {
					case "script":
						inScript = true
					case "/script":
						inScript = false
					case "style":
						inStyle = true
					case "/style":
						inStyle = false
					}
					if isBlockTag(lower) {
						result.WriteByte('\n')
					}
				} else {
					tagName.WriteRune(r)
				}
			}
			if r == '>' {
				inTag = false
			}
			i += size
			continue
		}

		if inScript || inStyle {
			i += size
			continue
		}

		result.WriteRune(r)
		i += size
	}

	return collapseWhitespace(html.UnescapeString(result.String()))
}

func isBlockTag(tag string) bool {
	tag = strings.TrimPrefix(tag, "/")
	switch tag {
	case "p", "div", "br", "hr", "h1", "h2", "h3", "h4", "h5", "h6",
		"li", "ul", "ol", "table", "tr", "blockquote", "pre",
		"section", "article", "header", "footer", "nav", "main":
		return true
	}
	return false
}

// collapseWhitespace trims each line and collapses runs of blank lines
// down to at most one.
func collapseWhitespace(text string) string {
	var result strings.Builder
	emptyCount := 0

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if result.Len() > 0 {
				emptyCount++
			}
			continue
		}
		if emptyCount > 0 {
			result.WriteByte('\n')
			if emptyCount > 1 {
				result.WriteByte('\n')
			}
		} else if result.Len() > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(trimmed)
		emptyCount = 0
	}

	return strings.TrimSpace(result.String())
}
