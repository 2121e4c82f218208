package summary

import (
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{"short text unchanged", "hello world", 100, "hello world"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"truncates at word boundary", "a b c d e", 3, "a..."},
		{"no space in prefix", "abcdefghij", 5, "abcde..."},
		{"empty text", "", 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.text, tt.maxLength); got != tt.want {
				t.Errorf("Summarize(%q, %d) = %q, want %q", tt.text, tt.maxLength, got, tt.want)
			}
		})
	}
}

func TestSummarizeLongText(t *testing.T) {
	text := strings.Repeat("word ", 50)
	got := Summarize(text, 100)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
	if len(got) > 103 {
		t.Errorf("len = %d, want <= 103", len(got))
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "..."), " ") {
		t.Errorf("trailing space before ellipsis: %q", got)
	}
}
