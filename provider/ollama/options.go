package ollama

import (
	"log/slog"
	"net/http"
)

// Option configures a Client or an Embedder.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client, e.g. to set a
// transport-level timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets a structured logger. If not set, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithEmbedderHTTPClient replaces the Embedder's default http.Client.
func WithEmbedderHTTPClient(hc *http.Client) EmbedderOption {
	return func(e *Embedder) { e.client = hc }
}
