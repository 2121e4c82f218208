package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	groto "github.com/Ritam-910/groto"
)

// Embedder implements groto.EmbeddingProvider via Ollama's /api/embed
// endpoint.
type Embedder struct {
	baseURL    string
	model      string
	dimensions int
	client     *http.Client
}

// NewEmbedder creates an Embedder for the given base URL, embedding
// model (e.g. "nomic-embed-text") and vector size.
func NewEmbedder(baseURL, model string, dimensions int, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		baseURL:    baseURL,
		model:      model,
		dimensions: dimensions,
		client:     &http.Client{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed returns one vector per input text.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	payload, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("marshal embed request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &groto.ErrHTTP{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("decode embed response: %v", err)}
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(parsed.Embeddings))}
	}
	return parsed.Embeddings, nil
}

// Dimensions returns the configured embedding vector size.
func (e *Embedder) Dimensions() int { return e.dimensions }

// Name returns "ollama".
func (e *Embedder) Name() string { return providerName }

// Compile-time interface check.
var _ groto.EmbeddingProvider = (*Embedder)(nil)
