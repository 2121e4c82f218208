package groto

import (
	"context"
	"fmt"
	"log/slog"
)

// Retrieval defaults: naive fixed-size character windows with overlap,
// and a small result set for answer grounding.
const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
	DefaultTopK         = 3
)

// Retriever ingests documents into a vector store and answers
// similarity queries. It is a thin pipeline: chunk, embed, add on the
// way in; embed, query on the way out.
type Retriever struct {
	store     VectorStore
	embedding EmbeddingProvider
	chunkSize int
	overlap   int
	logger    *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithChunking overrides the chunk size and overlap (characters).
func WithChunking(size, overlap int) RetrieverOption {
	return func(r *Retriever) {
		r.chunkSize = size
		r.overlap = overlap
	}
}

// WithRetrieverLogger sets a structured logger for the retriever.
func WithRetrieverLogger(l *slog.Logger) RetrieverOption {
	return func(r *Retriever) { r.logger = l }
}

// NewRetriever creates a Retriever over the given store and embedding
// provider.
func NewRetriever(store VectorStore, embedding EmbeddingProvider, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		store:     store,
		embedding: embedding,
		chunkSize: defaultChunkSize,
		overlap:   defaultChunkOverlap,
		logger:    nopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ingest chunks text, embeds every chunk, and stores the document.
// It returns the generated document id and the number of chunks.
func (r *Retriever) Ingest(ctx context.Context, text, source string) (string, int, error) {
	docID := NewID()
	pieces := chunkText(text, r.chunkSize, r.overlap)
	if len(pieces) == 0 {
		return "", 0, fmt.Errorf("ingest: empty text")
	}

	vectors, err := r.embedding.Embed(ctx, pieces)
	if err != nil {
		return "", 0, fmt.Errorf("ingest: embed: %w", err)
	}
	if len(vectors) != len(pieces) {
		return "", 0, fmt.Errorf("ingest: embedding count mismatch: %d texts, %d vectors", len(pieces), len(vectors))
	}

	chunks := make([]Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = Chunk{
			ID:         fmt.Sprintf("%s_%d", docID, i),
			DocumentID: docID,
			Source:     source,
			Content:    piece,
			ChunkIndex: i,
			Embedding:  vectors[i],
		}
	}

	doc := Document{ID: docID, Source: source, Content: text, CreatedAt: NowUnix()}
	if err := r.store.StoreDocument(ctx, doc, chunks); err != nil {
		return "", 0, fmt.Errorf("ingest: store: %w", err)
	}

	r.logger.Info("document ingested", "document_id", docID, "source", source, "chunks", len(chunks))
	return docID, len(chunks), nil
}

// Search embeds the query and returns the topK most similar chunks.
// topK <= 0 falls back to DefaultTopK.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]RetrievalResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	vectors, err := r.embedding.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("search: embed: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("search: embedding provider returned no vector")
	}

	scored, err := r.store.SearchChunks(ctx, vectors[0], topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]RetrievalResult, len(scored))
	for i, sc := range scored {
		results[i] = RetrievalResult{Content: sc.Content, Source: sc.Source, Score: sc.Score}
	}
	return results, nil
}

// chunkText splits text into fixed-size character windows that overlap
// by overlap characters. Text that fits in one window is returned as a
// single chunk. Windows advance by size-overlap so every boundary
// appears in two chunks.
func chunkText(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	step := size - overlap
	if step < 1 {
		step = 1
	}
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
