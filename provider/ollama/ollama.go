// Package ollama implements groto.Provider and groto.EmbeddingProvider
// against the native Ollama HTTP API (/api/chat, /api/show, /api/embed).
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	groto "github.com/Ritam-910/groto"
)

const providerName = "ollama"

// Client is a chat provider backed by a local Ollama server.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// New creates a Client for the given Ollama base URL (e.g.
// "http://localhost:11434") and model name.
func New(baseURL, model string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
		logger:  slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns "ollama".
func (c *Client) Name() string { return providerName }

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// chatRequest is the /api/chat request body.
type chatRequest struct {
	Model    string              `json:"model"`
	Messages []groto.ChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  map[string]any      `json:"options,omitempty"`
}

// chatResponse is one /api/chat response object. In streaming mode
// Ollama sends one of these per NDJSON line, with Done on the last.
type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Chat sends a non-streaming chat request and returns the complete
// assistant reply.
func (c *Client) Chat(ctx context.Context, req groto.ChatRequest) (string, error) {
	resp, err := c.sendChat(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httpErr(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return parsed.Message.Content, nil
}

// sendChat marshals the request body and posts it to /api/chat.
func (c *Client) sendChat(ctx context.Context, req groto.ChatRequest, stream bool) (*http.Response, error) {
	body := chatRequest{
		Model:    c.model,
		Messages: req.Messages,
		Stream:   stream,
		Options: map[string]any{
			"temperature": req.Options.Temperature,
			"num_predict": req.Options.MaxTokens,
		},
	}
	return c.post(ctx, "/api/chat", body)
}

// Show probes availability of the configured model via /api/show.
// Ollama answers 404 when the model is not pulled; that surfaces as
// *groto.ErrHTTP so callers can tell "model missing" from "server down".
func (c *Client) Show(ctx context.Context) error {
	resp, err := c.post(ctx, "/api/show", map[string]string{"model": c.model})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpErr(resp)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// post sends a JSON body to the given API path.
func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &groto.ErrModel{Provider: providerName, Message: err.Error()}
	}
	return resp, nil
}

// httpErr reads the response body and returns a groto.ErrHTTP.
func httpErr(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &groto.ErrHTTP{Status: resp.StatusCode, Body: string(body)}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Compile-time interface check.
var _ groto.Provider = (*Client)(nil)
