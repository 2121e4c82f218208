package groto

import (
	"context"
	"errors"
	"testing"
)

func TestToolRegistryExecute(t *testing.T) {
	reg := NewToolRegistry()
	reg.Register("greet", "Say hello", func(_ context.Context, params map[string]any) ToolResult {
		name, _ := params["name"].(string)
		return ToolResult{Content: "hello " + name}
	})

	result, err := reg.Execute(context.Background(), "greet", map[string]any{"name": "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if result != "hello bob" {
		t.Errorf("expected 'hello bob', got %q", result)
	}
}

func TestToolRegistryNotFound(t *testing.T) {
	reg := NewToolRegistry()
	_, err := reg.Execute(context.Background(), "nonexistent", nil)
	var notFound *ErrToolNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("expected name 'nonexistent', got %q", notFound.Name)
	}
}

func TestToolRegistrySoftFailure(t *testing.T) {
	reg := NewToolRegistry()
	reg.Register("broken", "Always fails", func(_ context.Context, _ map[string]any) ToolResult {
		return ToolResult{Error: "boom"}
	})

	result, err := reg.Execute(context.Background(), "broken", nil)
	if err != nil {
		t.Fatalf("handler failure must not propagate: %v", err)
	}
	if result != "Error executing tool: boom" {
		t.Errorf("got %q", result)
	}
}

func TestToolRegistryPanicRecovery(t *testing.T) {
	reg := NewToolRegistry()
	reg.Register("panicky", "Panics", func(_ context.Context, _ map[string]any) ToolResult {
		panic("unexpected nil")
	})

	result, err := reg.Execute(context.Background(), "panicky", nil)
	if err != nil {
		t.Fatalf("panic must not propagate: %v", err)
	}
	if result != "Error executing tool: unexpected nil" {
		t.Errorf("got %q", result)
	}
}

func TestToolRegistryOverwriteLastWins(t *testing.T) {
	reg := NewToolRegistry()
	reg.Register("echo", "first", func(_ context.Context, _ map[string]any) ToolResult {
		return ToolResult{Content: "first"}
	})
	reg.Register("echo", "second", func(_ context.Context, _ map[string]any) ToolResult {
		return ToolResult{Content: "second"}
	})

	if desc := reg.Descriptions()["echo"]; desc != "second" {
		t.Errorf("expected overwritten description, got %q", desc)
	}
	result, _ := reg.Execute(context.Background(), "echo", nil)
	if result != "second" {
		t.Errorf("expected overwritten handler, got %q", result)
	}
}

func TestToolRegistryDescriptionsSnapshot(t *testing.T) {
	reg := NewToolRegistry()
	reg.Register("a", "desc a", func(_ context.Context, _ map[string]any) ToolResult { return ToolResult{} })

	snapshot := reg.Descriptions()
	snapshot["a"] = "mutated"
	snapshot["b"] = "injected"

	fresh := reg.Descriptions()
	if fresh["a"] != "desc a" {
		t.Errorf("snapshot mutation leaked into registry: %q", fresh["a"])
	}
	if _, ok := fresh["b"]; ok {
		t.Error("snapshot insertion leaked into registry")
	}
}
