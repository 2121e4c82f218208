package groto

import "context"

// Provider abstracts the model service backend.
type Provider interface {
	// Chat sends a request and returns the complete assistant reply.
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// ChatStream streams incremental text chunks into ch, then returns
	// the fully accumulated reply. Implementations close ch on every
	// return path; callers should read from ch in a separate goroutine.
	ChatStream(ctx context.Context, req ChatRequest, ch chan<- string) (string, error)
	// Show probes availability of the configured model. A nil return
	// means the service is reachable and the model is present. A
	// *ErrHTTP return means the service answered but the model is
	// missing; any other error means the service is unreachable.
	Show(ctx context.Context) error
	// Model returns the configured model name (e.g. "phi3:latest").
	Model() string
	// Name returns the provider name (e.g. "ollama").
	Name() string
}

// EmbeddingProvider abstracts text embedding.
type EmbeddingProvider interface {
	// Embed returns embedding vectors for the given texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the embedding vector size.
	Dimensions() int
	// Name returns the provider name.
	Name() string
}
