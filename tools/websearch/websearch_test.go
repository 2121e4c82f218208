package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleHTML = `
<div class="result">
  <a class="result__a" href="https://example.com/one">First <b>Result</b></a>
  <a class="result__snippet" href="#">Snippet &amp; more <i>text</i></span>
</div>
<div class="result">
  <a class="result__a" href="https://example.com/two">Second Result</a>
  <a class="result__snippet" href="#">Another &quot;snippet&quot;</span>
</div>
`

func TestSearchFormatsResults(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotQuery = r.FormValue("q")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleHTML))
	}))
	defer srv.Close()

	s := New(WithEndpoint(srv.URL))
	out := s.Search(context.Background(), "golang", 5)

	if gotQuery != "golang" {
		t.Errorf("query = %q, want %q", gotQuery, "golang")
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Errorf("user agent = %q", gotUA)
	}
	if !strings.HasPrefix(out, " **Web Search Results for: golang**") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "1. **First Result**") {
		t.Errorf("missing first result: %q", out)
	}
	if !strings.Contains(out, "Snippet & more text") {
		t.Errorf("tags or entities not cleaned: %q", out)
	}
	if !strings.Contains(out, `Another "snippet"`) {
		t.Errorf("quot not unescaped: %q", out)
	}
	if !strings.Contains(out, "URL: https://example.com/two") {
		t.Errorf("missing second URL: %q", out)
	}
}

func TestSearchMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleHTML))
	}))
	defer srv.Close()

	s := New(WithEndpoint(srv.URL))
	out := s.Search(context.Background(), "golang", 1)

	if !strings.Contains(out, "1. **First Result**") {
		t.Errorf("missing first result: %q", out)
	}
	if strings.Contains(out, "Second Result") {
		t.Errorf("max_results not applied: %q", out)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	s := New(WithEndpoint(srv.URL))
	out := s.Search(context.Background(), "nonsense", 5)
	if out != "No results found for: nonsense" {
		t.Errorf("out = %q", out)
	}
}

func TestSearchHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := New(WithEndpoint(srv.URL))
	out := s.Search(context.Background(), "golang", 5)
	if out != "Search failed with status code: 403" {
		t.Errorf("out = %q", out)
	}
}

func TestSearchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	s := New(
		WithEndpoint(srv.URL),
		WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}),
	)
	out := s.Search(context.Background(), "slow", 5)
	if out != "Search timed out. Please try again." {
		t.Errorf("out = %q", out)
	}
}
