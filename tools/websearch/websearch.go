// Package websearch provides the search_web tool backed by the
// DuckDuckGo HTML endpoint. No API key is required; results are
// scraped from the HTML response with a fixed pattern.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	groto "github.com/Ritam-910/groto"
)

// Name is the registered tool name.
const Name = "search_web"

// Description is the tool description shown to the model.
const Description = "Search the web for real-time information using DuckDuckGo"

const (
	defaultEndpoint   = "https://html.duckduckgo.com/html/"
	defaultMaxResults = 5
	userAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// resultPattern pulls (link, title, snippet) tuples out of the result
// markup. Title and snippet may still contain inline tags; those are
// stripped separately.
var resultPattern = regexp.MustCompile(`(?s)result__a.*?href="(.*?)".*?>(.*?)</a>.*?result__snippet.*?>(.*?)</span`)

var tagPattern = regexp.MustCompile(`<.*?>`)

// Option configures a Searcher.
type Option func(*Searcher)

// WithEndpoint overrides the search endpoint URL. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(s *Searcher) { s.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) { s.client = c }
}

// Searcher performs web searches via the DuckDuckGo HTML endpoint.
type Searcher struct {
	endpoint string
	client   *http.Client
}

// New creates a Searcher with a 10 second timeout.
func New(opts ...Option) *Searcher {
	s := &Searcher{
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search runs a query and returns formatted results. All failures come
// back as text so the outcome always goes into model context.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) string {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return searchError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "Search timed out. Please try again."
		}
		return searchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Search failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return searchError(err)
	}

	return formatResults(query, string(body), maxResults)
}

func formatResults(query, html string, maxResults int) string {
	matches := resultPattern.FindAllStringSubmatch(html, -1)
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	var results []string
	for i, m := range matches {
		link := m[1]
		title := cleanFragment(m[2])
		snippet := cleanFragment(m[3])
		results = append(results, fmt.Sprintf("%d. **%s**\n   %s\n   URL: %s\n", i+1, title, snippet, link))
	}

	if len(results) == 0 {
		return fmt.Sprintf("No results found for: %s", query)
	}
	return fmt.Sprintf(" **Web Search Results for: %s**\n\n", query) + strings.Join(results, "\n")
}

// cleanFragment strips inline tags and unescapes the two entities the
// result markup actually contains.
func cleanFragment(s string) string {
	s = strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	return s
}

func searchError(err error) string {
	return fmt.Sprintf("Search error: %s\nNote: Using DuckDuckGo search - no API key required!", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Register adds the tool to a registry. Parameters: query (string),
// max_results (number, optional).
func (s *Searcher) Register(r *groto.ToolRegistry) {
	r.Register(Name, Description, func(ctx context.Context, params map[string]any) groto.ToolResult {
		query, _ := params["query"].(string)
		maxResults := 0
		if v, ok := params["max_results"].(float64); ok {
			maxResults = int(v)
		}
		return groto.ToolResult{Content: s.Search(ctx, query, maxResults)}
	})
}
