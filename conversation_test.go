package groto

import (
	"testing"
	"time"
)

func TestGetOrCreateFreshIDs(t *testing.T) {
	store := NewConversationStore()
	first := store.GetOrCreate("")
	second := store.GetOrCreate("")
	if first.ID == second.ID {
		t.Errorf("two fresh conversations share id %q", first.ID)
	}
}

func TestGetOrCreateStableState(t *testing.T) {
	store := NewConversationStore()
	state := store.GetOrCreate("x")
	state.AppendMessage(RoleUser, "hello")

	again := store.GetOrCreate("x")
	if again != state {
		t.Fatal("expected the same state object for a known id")
	}
	again.AppendMessage(RoleAssistant, "hi")
	if got := len(state.Messages()); got != 2 {
		t.Errorf("expected 2 messages, got %d", got)
	}
}

func TestUpdatedAtMonotonic(t *testing.T) {
	store := NewConversationStore()
	state := store.GetOrCreate("x")
	before := state.UpdatedAt()
	time.Sleep(time.Millisecond)
	state.AppendMessage(RoleUser, "a")
	after := state.UpdatedAt()
	if after.Before(before) {
		t.Errorf("UpdatedAt went backwards: %v -> %v", before, after)
	}
}

func TestClear(t *testing.T) {
	store := NewConversationStore()
	if store.Clear("missing") {
		t.Error("clearing an unknown id must report false")
	}

	store.GetOrCreate("x").AppendMessage(RoleUser, "hello")
	if !store.Clear("x") {
		t.Error("clearing a known id must report true")
	}
	if _, ok := store.History("x"); ok {
		t.Error("history must report not-found after clear")
	}
}

func TestHistoryFiltersRoles(t *testing.T) {
	store := NewConversationStore()
	state := store.GetOrCreate("x")
	state.AppendMessage(RoleUser, "question")
	state.AppendMessage(RoleAssistant, "answer")
	state.AppendMessage(RoleSystem, "bookkeeping")
	state.AppendToolInvocation("calculate", map[string]any{"expression": "1+1"}, "2")

	history, ok := store.History("x")
	if !ok {
		t.Fatal("expected history for known id")
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(history))
	}
	if history[0].Role != RoleUser || history[1].Role != RoleAssistant {
		t.Errorf("unexpected order: %v", history)
	}
}

func TestToolInvocationsRecorded(t *testing.T) {
	store := NewConversationStore()
	state := store.GetOrCreate("x")
	state.AppendToolInvocation("get_current_time", map[string]any{}, "Monday, 2026-01-05 10:00:00 (UTC+00:00)")

	invocations := state.ToolInvocations()
	if len(invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(invocations))
	}
	if invocations[0].ToolName != "get_current_time" {
		t.Errorf("got %q", invocations[0].ToolName)
	}
}
