package groto

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Default sampling parameters, matching the model service defaults the
// agent was tuned against.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2048
)

// Agent orchestrates one conversation turn: append the user message,
// call the model, execute at most one tool round-trip, and append the
// final assistant reply. It never lets a failure cross the turn
// boundary: every turn produces a structured TurnResult.
type Agent struct {
	provider      Provider
	tools         ToolExecutor
	conversations *ConversationStore
	temperature   float64
	maxTokens     int
	logger        *slog.Logger
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithTools sets the tool executor. Without it the agent answers from
// the model alone and the prompt carries no tool catalog.
func WithTools(t ToolExecutor) AgentOption {
	return func(a *Agent) { a.tools = t }
}

// WithTemperature sets the sampling temperature for every model call.
func WithTemperature(t float64) AgentOption {
	return func(a *Agent) { a.temperature = t }
}

// WithMaxTokens caps the tokens generated per model call.
func WithMaxTokens(n int) AgentOption {
	return func(a *Agent) { a.maxTokens = n }
}

// WithLogger sets a structured logger. If not set, logs are discarded.
func WithLogger(l *slog.Logger) AgentOption {
	return func(a *Agent) { a.logger = l }
}

// WithConversationStore injects a shared conversation store. Without
// it the agent owns a private one.
func WithConversationStore(cs *ConversationStore) AgentOption {
	return func(a *Agent) { a.conversations = cs }
}

// NewAgent creates an Agent backed by the given model provider.
func NewAgent(provider Provider, opts ...AgentOption) *Agent {
	a := &Agent{
		provider:    provider,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		logger:      nopLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.conversations == nil {
		a.conversations = NewConversationStore()
	}
	return a
}

// Conversations returns the agent's conversation store.
func (a *Agent) Conversations() *ConversationStore { return a.conversations }

func (a *Agent) options() GenerateOptions {
	return GenerateOptions{Temperature: a.temperature, MaxTokens: a.maxTokens}
}

// Chat runs one turn for the given user message. An empty
// conversationID starts a fresh conversation. Model failures during
// either call are absorbed into the result: Response carries a
// readable error string and Metadata.Error is set, with the
// conversation state kept as mutated up to the last successful append.
func (a *Agent) Chat(ctx context.Context, userMessage, conversationID string) TurnResult {
	state := a.conversations.GetOrCreate(conversationID)
	state.AppendMessage(RoleUser, userMessage)

	useTools := a.tools != nil
	var descriptions map[string]string
	if useTools {
		descriptions = a.tools.Descriptions()
	}
	messages := BuildMessages(state, descriptions, useTools)

	reply, err := a.provider.Chat(ctx, ChatRequest{Messages: messages, Options: a.options()})
	if err != nil {
		a.logger.Error("model call failed", "conversation_id", state.ID, "error", err)
		return a.errorTurn(state, err)
	}

	if useTools {
		if name, params, ok := ParseToolCall(reply); ok {
			reply, err = a.runToolTurn(ctx, state, messages, reply, name, params)
			if err != nil {
				a.logger.Error("tool turn failed", "conversation_id", state.ID, "tool", name, "error", err)
				return a.errorTurn(state, err)
			}
		}
	}

	state.AppendMessage(RoleAssistant, reply)
	messageCount, toolCalls := state.Counts()
	return TurnResult{
		Response:       reply,
		ConversationID: state.ID,
		Timestamp:      time.Now(),
		Metadata: TurnMetadata{
			Model:        a.provider.Model(),
			MessageCount: messageCount,
			ToolCalls:    toolCalls,
		},
	}
}

// runToolTurn executes the parsed tool call and issues the follow-up
// model call. Exactly one tool execution happens per turn: if the
// second reply also contains tool-call syntax it is returned verbatim,
// never re-parsed.
func (a *Agent) runToolTurn(ctx context.Context, state *ConversationState, messages []ChatMessage, assistantReply, name string, params map[string]any) (string, error) {
	result, err := a.tools.Execute(ctx, name, params)
	if err != nil {
		// Only unregistered tool names reach here; handler failures
		// come back as textual results.
		return "", err
	}
	state.AppendToolInvocation(name, params, result)
	a.logger.Info("tool executed", "conversation_id", state.ID, "tool", name)

	followup := append(messages,
		ChatMessage{Role: RoleAssistant, Content: assistantReply},
		ChatMessage{Role: RoleUser, Content: "Tool Result (" + name + "): " + result + "\n\nRespond naturally using this information."},
	)
	return a.provider.Chat(ctx, ChatRequest{Messages: followup, Options: a.options()})
}

// errorTurn converts a model-service failure into a soft turn result.
// The user message stays recorded; no assistant message is appended.
func (a *Agent) errorTurn(state *ConversationState, err error) TurnResult {
	return TurnResult{
		Response:       "Error generating response: " + err.Error(),
		ConversationID: state.ID,
		Timestamp:      time.Now(),
		Metadata:       TurnMetadata{Error: true},
	}
}

// ChatStream runs one turn in streaming mode, forwarding incremental
// text chunks into ch and closing it when done. The streaming variant
// does not intercept tool calls. On success the accumulated reply is
// appended to history; a mid-stream failure yields a single error-text
// chunk and the partial text is not committed.
func (a *Agent) ChatStream(ctx context.Context, userMessage, conversationID string, ch chan<- string) {
	defer close(ch)

	state := a.conversations.GetOrCreate(conversationID)
	state.AppendMessage(RoleUser, userMessage)

	messages := BuildMessages(state, nil, false)

	inner := make(chan string)
	var full string
	var err error
	done := make(chan struct{})
	go func() {
		defer close(done)
		full, err = a.provider.ChatStream(ctx, ChatRequest{Messages: messages, Options: a.options()}, inner)
	}()

	for chunk := range inner {
		select {
		case ch <- chunk:
		case <-ctx.Done():
			// Drain so the provider goroutine can finish.
			for range inner {
			}
		}
	}
	<-done

	if err != nil {
		a.logger.Error("stream failed", "conversation_id", state.ID, "error", err)
		select {
		case ch <- "Error: " + err.Error():
		case <-ctx.Done():
		}
		return
	}
	state.AppendMessage(RoleAssistant, full)
}

// HealthCheck probes the model service. Status is "healthy" when the
// service answered and the model is present, "model_not_found" when
// the service answered but the model is missing, and "unhealthy" when
// the service is unreachable.
func (a *Agent) HealthCheck(ctx context.Context) Health {
	health := Health{Model: a.provider.Model()}

	err := a.provider.Show(ctx)
	if err == nil {
		health.Status = StatusHealthy
		health.OllamaConnected = true
		health.ModelAvailable = true
		return health
	}

	var httpErr *ErrHTTP
	if errors.As(err, &httpErr) {
		health.Status = StatusModelNotFound
		health.OllamaConnected = true
		health.Err = err.Error()
		return health
	}

	health.Status = StatusUnhealthy
	health.Err = err.Error()
	return health
}

// ClearConversation removes a conversation and reports whether it
// existed.
func (a *Agent) ClearConversation(id string) bool {
	return a.conversations.Clear(id)
}

// History returns the user/assistant transcript for a conversation.
func (a *Agent) History(id string) ([]ChatMessage, bool) {
	return a.conversations.History(id)
}

// nopLogger discards all records. Used when no logger is injected so
// call sites never nil-check.
var nopLogger = slog.New(discardHandler{})

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
