package groto

import "fmt"

// ErrToolNotFound is returned by ToolRegistry.Execute when the requested
// tool name has never been registered. Handler failures are not errors:
// they come back as textual results the model can read.
type ErrToolNotFound struct {
	Name string
}

func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// ErrConversationNotFound signals an unknown conversation id on a
// history or clear lookup.
type ErrConversationNotFound struct {
	ID string
}

func (e *ErrConversationNotFound) Error() string {
	return fmt.Sprintf("conversation %q not found", e.ID)
}

// ErrModel wraps a failure from the model service (unreachable host,
// malformed response, transport error).
type ErrModel struct {
	Provider string
	Message  string
}

func (e *ErrModel) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ErrHTTP is a non-200 response from the model service.
type ErrHTTP struct {
	Status int
	Body   string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}
