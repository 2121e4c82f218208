// Package postgres implements groto.VectorStore using PostgreSQL with
// pgvector for native vector similarity search.
//
// The Store accepts an externally-owned *pgxpool.Pool via constructor
// injection. The caller creates and closes the pool.
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	groto "github.com/Ritam-910/groto"
)

// Store implements groto.VectorStore backed by PostgreSQL with pgvector.
// Vector search uses HNSW indexes with cosine distance.
type Store struct {
	pool *pgxpool.Pool
	cfg  pgConfig
}

// pgConfig holds store configuration set via Option functions.
type pgConfig struct {
	embeddingDimension int // 0 = untyped vector
}

// Option configures a PostgreSQL Store.
type Option func(*pgConfig)

// WithEmbeddingDimension sets the vector column dimension (e.g. 768).
// When set, CREATE TABLE uses vector(N) instead of untyped vector,
// enabling better index optimization and catching dimension mismatches
// at insert time. Only affects new table creation.
func WithEmbeddingDimension(dim int) Option {
	return func(c *pgConfig) { c.embeddingDimension = dim }
}

var _ groto.VectorStore = (*Store)(nil)

// New creates a Store using an existing pgxpool.Pool.
// The caller owns the pool and is responsible for closing it.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	var cfg pgConfig
	for _, o := range opts {
		o(&cfg)
	}
	return &Store{pool: pool, cfg: cfg}
}

// vectorType returns "vector" or "vector(N)" depending on config.
func (s *Store) vectorType() string {
	if s.cfg.embeddingDimension > 0 {
		return fmt.Sprintf("vector(%d)", s.cfg.embeddingDimension)
	}
	return "vector"
}

// Init creates the pgvector extension, all required tables, and indexes.
// Safe to call multiple times (all statements are idempotent).
func (s *Store) Init(ctx context.Context) error {
	vtype := s.vectorType()

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			embedding %s
		)`, vtype),
		`CREATE INDEX IF NOT EXISTS chunks_document_idx ON chunks(document_id)`,
		`CREATE INDEX IF NOT EXISTS chunks_embedding_idx ON chunks USING hnsw (embedding vector_cosine_ops)`,
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: init: %w", err)
		}
	}
	return nil
}

// StoreDocument inserts a document and all its chunks in a single transaction.
func (s *Store) StoreDocument(ctx context.Context, doc groto.Document, chunks []groto.Chunk) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (id, source, content, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   source = EXCLUDED.source,
		   content = EXCLUDED.content,
		   created_at = EXCLUDED.created_at`,
		doc.ID, doc.Source, doc.Content, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert document: %w", err)
	}

	for _, chunk := range chunks {
		if len(chunk.Embedding) > 0 {
			embStr := serializeEmbedding(chunk.Embedding)
			_, err = tx.Exec(ctx,
				`INSERT INTO chunks (id, document_id, source, content, chunk_index, embedding)
				 VALUES ($1, $2, $3, $4, $5, $6::vector)
				 ON CONFLICT (id) DO UPDATE SET
				   document_id = EXCLUDED.document_id,
				   source = EXCLUDED.source,
				   content = EXCLUDED.content,
				   chunk_index = EXCLUDED.chunk_index,
				   embedding = EXCLUDED.embedding`,
				chunk.ID, chunk.DocumentID, chunk.Source, chunk.Content, chunk.ChunkIndex, embStr)
		} else {
			_, err = tx.Exec(ctx,
				`INSERT INTO chunks (id, document_id, source, content, chunk_index, embedding)
				 VALUES ($1, $2, $3, $4, $5, NULL)
				 ON CONFLICT (id) DO UPDATE SET
				   document_id = EXCLUDED.document_id,
				   source = EXCLUDED.source,
				   content = EXCLUDED.content,
				   chunk_index = EXCLUDED.chunk_index,
				   embedding = NULL`,
				chunk.ID, chunk.DocumentID, chunk.Source, chunk.Content, chunk.ChunkIndex)
		}
		if err != nil {
			return fmt.Errorf("postgres: insert chunk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit tx: %w", err)
	}
	return nil
}

// SearchChunks performs vector similarity search over document chunks
// using pgvector's cosine distance operator with HNSW index.
func (s *Store) SearchChunks(ctx context.Context, embedding []float32, topK int) ([]groto.ScoredChunk, error) {
	embStr := serializeEmbedding(embedding)
	rows, err := s.pool.Query(ctx,
		`SELECT id, document_id, source, content, chunk_index,
		        1 - (embedding <=> $1::vector) AS score
		 FROM chunks
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1::vector
		 LIMIT $2`,
		embStr, topK)
	if err != nil {
		return nil, fmt.Errorf("postgres: search chunks: %w", err)
	}
	defer rows.Close()

	var results []groto.ScoredChunk
	for rows.Next() {
		var c groto.Chunk
		var score float32
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Source, &c.Content, &c.ChunkIndex, &score); err != nil {
			return nil, fmt.Errorf("postgres: scan chunk: %w", err)
		}
		results = append(results, groto.ScoredChunk{Chunk: c, Score: score})
	}
	return results, rows.Err()
}

// Close is a no-op. The caller owns the pool and manages its lifecycle.
func (s *Store) Close() error {
	return nil
}

// serializeEmbedding converts []float32 to a string like "[0.1,0.2,0.3]"
// suitable for pgvector's text input format.
func serializeEmbedding(embedding []float32) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
