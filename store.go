package groto

import "context"

// VectorStore abstracts document persistence with vector search.
// The retriever treats it as an opaque add/query service.
type VectorStore interface {
	// StoreDocument persists a document and its embedded chunks
	// atomically. Re-storing an existing id replaces it.
	StoreDocument(ctx context.Context, doc Document, chunks []Chunk) error
	// SearchChunks returns the topK chunks most similar to the query
	// embedding, sorted by score descending.
	SearchChunks(ctx context.Context, embedding []float32, topK int) ([]ScoredChunk, error)
	// Init creates all required tables. Safe to call multiple times.
	Init(ctx context.Context) error
	// Close releases the underlying connection.
	Close() error
}
