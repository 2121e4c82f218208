package groto

import "time"

// Message roles. System entries are synthesized by the prompt assembler
// and never stored in conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation entry. Immutable once appended;
// append order is the only ordering guarantee.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ToolInvocation records one executed tool call. Created exactly once
// per execution and never mutated afterwards.
type ToolInvocation struct {
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
	Result     string         `json:"result"`
}

// ChatMessage is the wire-level message sent to the model service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateOptions are the sampling parameters passed on every model call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// ChatRequest is the input to a Provider call.
type ChatRequest struct {
	Messages []ChatMessage
	Options  GenerateOptions
}

// TurnMetadata describes the outcome of one agent turn.
type TurnMetadata struct {
	Model        string `json:"model,omitempty"`
	MessageCount int    `json:"message_count,omitempty"`
	ToolCalls    int    `json:"tool_calls,omitempty"`
	Error        bool   `json:"error,omitempty"`
}

// TurnResult is the agent's answer to one user message.
type TurnResult struct {
	Response       string       `json:"response"`
	ConversationID string       `json:"conversation_id"`
	Timestamp      time.Time    `json:"timestamp"`
	Metadata       TurnMetadata `json:"metadata"`
}

// Health reports the availability of the model service.
type Health struct {
	Status          string `json:"status"` // "healthy", "model_not_found", "unhealthy"
	OllamaConnected bool   `json:"ollama_connected"`
	Model           string `json:"model"`
	ModelAvailable  bool   `json:"model_available"`
	Err             string `json:"error,omitempty"`
}

// Health status values.
const (
	StatusHealthy       = "healthy"
	StatusModelNotFound = "model_not_found"
	StatusUnhealthy     = "unhealthy"
)

// --- Retrieval types (database records) ---

// Document is an ingested source text.
type Document struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Chunk is one embedded slice of a document.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Source     string    `json:"source"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"-"`
}

// ScoredChunk is a chunk with its similarity score. Score is in [0, 1];
// higher means more relevant.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}

// RetrievalResult is one ranked match returned to callers of
// Retriever.Search.
type RetrievalResult struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float32 `json:"score"`
}
