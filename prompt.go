package groto

import (
	"fmt"
	"sort"
	"strings"
)

// historyWindow is the fixed sliding window applied when building the
// prompt: only the most recent historyWindow messages are sent to the
// model. This is the only truncation mechanism; no token counting.
const historyWindow = 10

// systemPrompt is the base instruction prepended to every prompt.
const systemPrompt = `You are an intelligent AI assistant. You are helpful, harmless, and honest.

Your capabilities include:
- Answering questions across various domains
- Helping with problem-solving and analysis
- Providing explanations and tutorials
- Assisting with creative tasks
- Using tools when necessary to enhance your responses
- Searching the web for real-time information

Guidelines:
1. Be concise but thorough in your responses
2. Use tools when specific information is needed (time, math, real-time info)
3. Maintain context throughout the conversation
4. Be friendly and professional

PROHIBITED BEHAVIORS - NEVER DO THESE:
- NEVER pretend to use a tool by typing placeholders like [search_web]
- NEVER announce "Let me check that" or "I will search now"
- NEVER provide a response AND a tool call in the same message
- NEVER output the tool format if you are also outputting normal text

DECISION RULE:
- If you know the answer directly (general knowledge), just answer naturally
- If you need a tool, output ONLY the tool call syntax
- Do NOT mix tools and text`

// toolUsagePrompt explains the invocation syntax. The %s placeholder
// receives the rendered tool catalog.
const toolUsagePrompt = `You have access to the following tools:

%s

CRITICAL RULES - YOU MUST ALWAYS FOLLOW THESE:

1. ALWAYS use get_current_time when asked about time, date, or "what time is it"
   - NEVER guess or make up the time
   - ALWAYS call the tool to get accurate, real-time information

2. ALWAYS use calculate for any math operations
   - NEVER do mental math

3. ALWAYS use search_web when asked to search or look up current information
   - NEVER rely on outdated training data

TOOL CALL FORMAT - When calling a tool, respond with ONLY this format (nothing else):
TOOL_CALL: tool_name
PARAMETERS: {"param1": "value1"}

DO NOT include any other text when calling a tool.
DO NOT say "I'll check that" before the tool call.
Just output the TOOL_CALL and PARAMETERS lines, nothing more.

After the tool executes, provide a natural response incorporating the result.`

// BuildMessages assembles the message list for one model call: a
// single system entry (optionally extended with the tool catalog and
// usage instructions), followed by the most recent historyWindow
// messages of the conversation, oldest of that window first.
func BuildMessages(state *ConversationState, descriptions map[string]string, includeTools bool) []ChatMessage {
	system := systemPrompt
	if includeTools {
		system += "\n\n" + renderToolPrompt(descriptions)
	}
	messages := []ChatMessage{{Role: RoleSystem, Content: system}}

	history := state.Messages()
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// renderToolPrompt renders the usage instructions with one
// "- name: description" line per registered tool, sorted by name for a
// stable prompt.
func renderToolPrompt(descriptions map[string]string) string {
	names := make([]string, 0, len(descriptions))
	for name := range descriptions {
		names = append(names, name)
	}
	sort.Strings(names)

	var catalog strings.Builder
	for i, name := range names {
		if i > 0 {
			catalog.WriteByte('\n')
		}
		catalog.WriteString("- " + name + ": " + descriptions[name])
	}
	return fmt.Sprintf(toolUsagePrompt, catalog.String())
}
