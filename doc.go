// Package groto is a conversational agent backend for locally hosted
// language models served by Ollama.
//
// It provides the building blocks of a chat service: an LLM provider
// abstraction, a tool registry with a line-based tool-call protocol,
// in-memory conversation state, a bounded prompt assembler, and a
// retrieval module for document search.
//
// # Quick Start
//
//	provider := ollama.New("http://localhost:11434", "phi3:latest")
//	registry := groto.NewToolRegistry()
//	clock.Register(registry)
//	calc.Register(registry)
//
//	agent := groto.NewAgent(provider, groto.WithTools(registry))
//	result := agent.Chat(ctx, "what time is it", "")
//
// # Core Interfaces
//
// The root package defines the contracts that all components implement:
//
//   - [Provider]: LLM backend (chat, streaming, availability probe)
//   - [EmbeddingProvider]: text-to-vector embedding
//   - [VectorStore]: document/chunk persistence with vector search
//   - [ToolExecutor]: tool catalog and dispatch
//
// # Included Implementations
//
// Provider: provider/ollama. Storage: store/sqlite (pure Go, local),
// store/postgres (pgvector). Tools: tools/clock, tools/calc,
// tools/websearch, tools/weather, tools/summary.
//
// See cmd/groto for the HTTP server composition root.
package groto
