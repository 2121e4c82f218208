package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestExtractTextPlain(t *testing.T) {
	out, err := ExtractText([]byte("  hello world  \n"), "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello world" {
		t.Errorf("out = %q, want %q", out, "hello world")
	}
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	out, err := ExtractText([]byte{0x00, 0x01}, "archive.tar.gz")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("out = %q, want empty", out)
	}
}

func TestExtractTextCaseInsensitiveExtension(t *testing.T) {
	out, err := ExtractText([]byte("upper"), "README.TXT")
	if err != nil {
		t.Fatal(err)
	}
	if out != "upper" {
		t.Errorf("out = %q, want %q", out, "upper")
	}
}

func TestMarkdownExtractor(t *testing.T) {
	md := "# Title\n\nSome [link](http://example.com) and **bold** text.\n"
	out, err := MarkdownExtractor{}.Extract([]byte(md))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("missing heading text: %q", out)
	}
	if !strings.Contains(out, "link and bold text.") {
		t.Errorf("formatting not stripped: %q", out)
	}
	if strings.Contains(out, "**") || strings.Contains(out, "](") {
		t.Errorf("markdown syntax leaked: %q", out)
	}
}

func TestStripHTMLBasic(t *testing.T) {
	out := stripHTML("<p>Hello <b>World</b></p><p>Second</p>")
	if !strings.Contains(out, "Hello World") {
		t.Errorf("missing text: %q", out)
	}
	if !strings.Contains(out, "Second") {
		t.Errorf("missing text: %q", out)
	}
	if strings.Contains(out, "<") {
		t.Errorf("tags leaked: %q", out)
	}
}

func TestStripHTMLScriptAndStyle(t *testing.T) {
	out := stripHTML("<p>visible</p><script>var x = 1;</script><style>p{color:red}</style>")
	if out != "visible" {
		t.Errorf("out = %q, want %q", out, "visible")
	}
}

func TestStripHTMLEntities(t *testing.T) {
	out := stripHTML("<p>Tom &amp; Jerry &quot;cartoon&quot;</p>")
	if out != `Tom & Jerry "cartoon"` {
		t.Errorf("out = %q", out)
	}
}

func TestPDFExtractorEmpty(t *testing.T) {
	if _, err := (&PDFExtractor{}).Extract(nil); err == nil {
		t.Error("expected error for nil content")
	}
}

func TestDOCXExtractorInvalid(t *testing.T) {
	e := &DOCXExtractor{}
	if _, err := e.Extract(nil); err == nil {
		t.Error("expected error for nil content")
	}
	if _, err := e.Extract([]byte("not a zip")); err == nil {
		t.Error("expected error for invalid content")
	}
}

func TestDOCXExtractorParagraphs(t *testing.T) {
	content := buildTestDocx(t, []string{"Hello World", "Second paragraph"})

	out, err := (&DOCXExtractor{}).Extract(content)
	if err != nil {
		t.Fatal(err)
	}
	want := "Hello World\n\nSecond paragraph"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestDOCXExtractorMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<x/>")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := (&DOCXExtractor{}).Extract(buf.Bytes()); err == nil {
		t.Error("expected error for zip without document.xml")
	}
}

func buildTestDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString("\n")
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	body.WriteString("\n<w:body>")
	for _, p := range paragraphs {
		body.WriteString(fmt.Sprintf("<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p))
	}
	body.WriteString("</w:body></w:document>")

	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(body.String())); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
