// Package summary provides the create_summary tool: whitespace-aware
// prefix truncation, not an LLM summarizer.
package summary

import (
	"context"
	"strings"

	groto "github.com/Ritam-910/groto"
)

// Name is the registered tool name.
const Name = "create_summary"

// Description is the tool description shown to the model.
const Description = "Create a summary of text"

// DefaultMaxLength is used when no max_length parameter is given.
const DefaultMaxLength = 100

// Summarize returns text unchanged when it fits in maxLength.
// Otherwise it truncates to maxLength, trims back to the last space
// boundary when one exists, and appends "...".
func Summarize(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	truncated := text[:maxLength]
	if i := strings.LastIndexByte(truncated, ' '); i >= 0 {
		truncated = truncated[:i]
	}
	return truncated + "..."
}

// Register adds the tool to a registry. Parameters: text (string),
// max_length (number, optional).
func Register(r *groto.ToolRegistry) {
	r.Register(Name, Description, func(_ context.Context, params map[string]any) groto.ToolResult {
		text, _ := params["text"].(string)
		maxLength := DefaultMaxLength
		if v, ok := params["max_length"].(float64); ok {
			maxLength = int(v)
		}
		return groto.ToolResult{Content: Summarize(text, maxLength)}
	})
}
