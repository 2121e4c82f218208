package groto

import (
	"sync"
	"time"
)

// ConversationState holds the full message and tool-invocation history
// for one conversation id. Appends are serialized by an internal mutex
// so concurrent turns on the same id interleave safely; there is no
// turn-level locking, so two simultaneous turns on one id still race
// at the semantic level (last writer wins). Lives in process memory
// for the process lifetime unless explicitly cleared; unbounded growth
// is an accepted limitation.
type ConversationState struct {
	ID        string
	CreatedAt time.Time

	mu              sync.Mutex
	messages        []Message
	toolInvocations []ToolInvocation
	updatedAt       time.Time
}

// AppendMessage appends a message and bumps UpdatedAt.
func (s *ConversationState) AppendMessage(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: role, Content: content, Timestamp: time.Now()})
	s.updatedAt = time.Now()
}

// AppendToolInvocation records one executed tool call.
func (s *ConversationState) AppendToolInvocation(name string, params map[string]any, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolInvocations = append(s.toolInvocations, ToolInvocation{
		ToolName:   name,
		Parameters: params,
		Result:     result,
	})
}

// Messages returns a snapshot copy of the message history.
func (s *ConversationState) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ToolInvocations returns a snapshot copy of the recorded tool calls.
func (s *ConversationState) ToolInvocations() []ToolInvocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ToolInvocation, len(s.toolInvocations))
	copy(out, s.toolInvocations)
	return out
}

// Counts returns the number of messages and tool invocations.
func (s *ConversationState) Counts() (messages, toolCalls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages), len(s.toolInvocations)
}

// UpdatedAt returns the time of the last append.
func (s *ConversationState) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// ConversationStore maps conversation ids to state. States are created
// lazily on first reference and never evicted; only Clear removes one.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*ConversationState
}

// NewConversationStore creates an empty store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{conversations: make(map[string]*ConversationState)}
}

// GetOrCreate returns the state for id, creating it when id is empty
// (fresh generated id) or unknown (empty history keyed by id).
// Repeated calls with the same known id return the same state.
func (cs *ConversationStore) GetOrCreate(id string) *ConversationState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if id != "" {
		if state, ok := cs.conversations[id]; ok {
			return state
		}
	}
	if id == "" {
		id = NewID()
	}
	now := time.Now()
	state := &ConversationState{ID: id, CreatedAt: now, updatedAt: now}
	cs.conversations[id] = state
	return state
}

// Get returns the state for a known id.
func (cs *ConversationStore) Get(id string) (*ConversationState, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	state, ok := cs.conversations[id]
	return state, ok
}

// Clear removes the state for id and reports whether it existed.
func (cs *ConversationStore) Clear(id string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.conversations[id]; !ok {
		return false
	}
	delete(cs.conversations, id)
	return true
}

// History returns the user/assistant transcript for id in append
// order, excluding tool bookkeeping. ok is false for an unknown id.
func (cs *ConversationStore) History(id string) ([]ChatMessage, bool) {
	state, ok := cs.Get(id)
	if !ok {
		return nil, false
	}
	messages := state.Messages()
	history := make([]ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			continue
		}
		history = append(history, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return history, true
}
