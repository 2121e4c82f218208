package groto

import (
	"context"
	"strings"
	"testing"
)

// mockEmbedding returns a deterministic vector per text (its length).
type mockEmbedding struct {
	calls [][]string
	err   error
}

func (m *mockEmbedding) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.calls = append(m.calls, texts)
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int { return 2 }
func (m *mockEmbedding) Name() string    { return "mock" }

// mockVectorStore records stored documents and serves canned search
// results.
type mockVectorStore struct {
	docs    []Document
	chunks  [][]Chunk
	results []ScoredChunk
}

func (m *mockVectorStore) StoreDocument(_ context.Context, doc Document, chunks []Chunk) error {
	m.docs = append(m.docs, doc)
	m.chunks = append(m.chunks, chunks)
	return nil
}

func (m *mockVectorStore) SearchChunks(_ context.Context, _ []float32, topK int) ([]ScoredChunk, error) {
	if len(m.results) > topK {
		return m.results[:topK], nil
	}
	return m.results, nil
}

func (m *mockVectorStore) Init(context.Context) error { return nil }
func (m *mockVectorStore) Close() error               { return nil }

func TestIngestSingleChunk(t *testing.T) {
	store := &mockVectorStore{}
	retriever := NewRetriever(store, &mockEmbedding{})

	docID, n, err := retriever.Ingest(context.Background(), "short text", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 chunk, got %d", n)
	}
	chunks := store.chunks[0]
	if chunks[0].ID != docID+"_0" {
		t.Errorf("chunk id must be <docID>_<index>, got %q", chunks[0].ID)
	}
	if chunks[0].Source != "notes.txt" {
		t.Errorf("got source %q", chunks[0].Source)
	}
	if len(chunks[0].Embedding) == 0 {
		t.Error("chunk must carry its embedding")
	}
}

func TestIngestChunksLongText(t *testing.T) {
	store := &mockVectorStore{}
	retriever := NewRetriever(store, &mockEmbedding{}, WithChunking(100, 20))

	text := strings.Repeat("a", 250)
	_, n, err := retriever.Ingest(context.Background(), text, "big.txt")
	if err != nil {
		t.Fatal(err)
	}
	// Windows advance by 80: [0,100) [80,180) [160,250)
	if n != 3 {
		t.Fatalf("expected 3 chunks, got %d", n)
	}
	chunks := store.chunks[0]
	for i, c := range chunks {
		if c.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, c.ChunkIndex)
		}
	}
	if len(chunks[0].Content) != 100 || len(chunks[2].Content) != 90 {
		t.Errorf("unexpected chunk sizes: %d, %d", len(chunks[0].Content), len(chunks[2].Content))
	}
}

func TestIngestEmptyText(t *testing.T) {
	retriever := NewRetriever(&mockVectorStore{}, &mockEmbedding{})
	if _, _, err := retriever.Ingest(context.Background(), "", "empty.txt"); err == nil {
		t.Error("expected an error for empty text")
	}
}

func TestSearch(t *testing.T) {
	store := &mockVectorStore{results: []ScoredChunk{
		{Chunk: Chunk{Content: "relevant", Source: "a.txt"}, Score: 0.9},
		{Chunk: Chunk{Content: "less so", Source: "b.txt"}, Score: 0.4},
	}}
	embedding := &mockEmbedding{}
	retriever := NewRetriever(store, embedding)

	results, err := retriever.Search(context.Background(), "query", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Content != "relevant" || results[0].Score != 0.9 {
		t.Errorf("got %+v", results[0])
	}
	if len(embedding.calls) != 1 || embedding.calls[0][0] != "query" {
		t.Errorf("query must be embedded once: %v", embedding.calls)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("x", 1000) + strings.Repeat("y", 500)
	chunks := chunkText(text, 1000, 200)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// Second window starts 200 characters before the end of the first.
	if !strings.HasPrefix(chunks[1], strings.Repeat("x", 200)) {
		t.Error("windows must overlap by 200 characters")
	}
}
