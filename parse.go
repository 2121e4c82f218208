package groto

import (
	"encoding/json"
	"strings"
)

// Tool-call line prefixes. The model emits a tool call as exactly two
// lines: "TOOL_CALL: <name>" followed by "PARAMETERS: <json object>".
const (
	toolCallPrefix   = "TOOL_CALL:"
	parametersPrefix = "PARAMETERS:"
)

// ParseToolCall extracts a tool invocation from raw model text.
// It scans line by line; when a prefix appears more than once the last
// occurrence wins. A response without a TOOL_CALL line is plain text
// and returns ok=false. Parameters that fail to parse as a JSON object
// degrade to an empty map rather than failing the whole parse.
func ParseToolCall(response string) (name string, params map[string]any, ok bool) {
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		switch {
		case strings.HasPrefix(line, toolCallPrefix):
			name = strings.TrimSpace(strings.TrimPrefix(line, toolCallPrefix))
		case strings.HasPrefix(line, parametersPrefix):
			raw := strings.TrimSpace(strings.TrimPrefix(line, parametersPrefix))
			var parsed map[string]any
			if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
				params = map[string]any{}
			} else {
				params = parsed
			}
		}
	}
	if name == "" {
		return "", nil, false
	}
	if params == nil {
		params = map[string]any{}
	}
	return name, params, true
}
