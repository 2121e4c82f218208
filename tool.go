package groto

import (
	"context"
	"fmt"
	"sync"
)

// ToolResult is the outcome of a tool handler. Exactly one of Content
// and Error is meaningful: a non-empty Error marks a soft failure that
// is folded back into model context as text, never propagated.
type ToolResult struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Handler is a tool implementation. Handlers receive keyword parameters
// decoded from the model's tool call and must not panic; a panic is
// recovered and downgraded to a textual error result.
type Handler func(ctx context.Context, params map[string]any) ToolResult

// ToolExecutor is the capability the agent loop needs from a tool
// system: a catalog for the prompt and a dispatcher for execution.
// ToolRegistry is the standard implementation; observer.WrapTools
// decorates it with instrumentation.
type ToolExecutor interface {
	// Descriptions returns a snapshot of name -> description for all
	// registered tools.
	Descriptions() map[string]string
	// Execute runs the named tool. The only error it returns is
	// *ErrToolNotFound; handler failures come back as the result text.
	Execute(ctx context.Context, name string, params map[string]any) (string, error)
}

type toolEntry struct {
	description string
	handler     Handler
}

// ToolRegistry binds tool names to handlers and descriptions.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]toolEntry
}

var _ ToolExecutor = (*ToolRegistry)(nil)

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]toolEntry)}
}

// Register binds name to a handler and a description. Registering an
// already-registered name silently overwrites the previous binding
// (last write wins).
func (r *ToolRegistry) Register(name, description string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = toolEntry{description: description, handler: h}
}

// Descriptions returns a snapshot copy of name -> description.
// Mutating the returned map does not affect the registry.
func (r *ToolRegistry) Descriptions() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.tools))
	for name, entry := range r.tools {
		out[name] = entry.description
	}
	return out
}

// Execute runs the named tool with the given keyword parameters.
// An unregistered name returns *ErrToolNotFound. Handler failures
// (error results and panics) are downgraded to a textual result so
// the model can read them; they are never fatal.
func (r *ToolRegistry) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	r.mu.RLock()
	entry, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", &ErrToolNotFound{Name: name}
	}

	result := r.call(ctx, entry.handler, params)
	if result.Error != "" {
		return "Error executing tool: " + result.Error, nil
	}
	return result.Content, nil
}

// call invokes a handler, converting panics into error results.
func (r *ToolRegistry) call(ctx context.Context, h Handler, params map[string]any) (result ToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ToolResult{Error: fmt.Sprint(rec)}
		}
	}()
	return h(ctx, params)
}
