// Package httpapi exposes the agent and retriever over HTTP.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	groto "github.com/Ritam-910/groto"
	"github.com/Ritam-910/groto/ingest"
)

// maxUploadSize caps document uploads (20 MB).
const maxUploadSize = 20 << 20

// Server routes HTTP requests to the agent and retriever.
// Retriever may be nil; document endpoints then return 503.
type Server struct {
	agent     *groto.Agent
	retriever *groto.Retriever
	logger    *slog.Logger
}

// New creates a Server.
func New(agent *groto.Agent, retriever *groto.Retriever, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{agent: agent, retriever: retriever, logger: logger}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /chat/stream", s.handleChatStream)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("DELETE /chat/clear/{id}", s.handleClear)
	mux.HandleFunc("GET /chat/history/{id}", s.handleHistory)
	mux.HandleFunc("POST /documents", s.handleDocumentUpload)
	mux.HandleFunc("POST /documents/search", s.handleDocumentSearch)
	return mux
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
	Stream         bool   `json:"stream"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Groto Agent API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"chat":    "/chat",
			"stream":  "/chat/stream",
			"health":  "/health",
			"clear":   "/chat/clear/{conversation_id}",
			"history": "/chat/history/{conversation_id}",
		},
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	result := s.agent.Chat(r.Context(), req.Message, req.ConversationID)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	ch := make(chan string, 16)
	go s.agent.ChatStream(r.Context(), req.Message, req.ConversationID, ch)

	for chunk := range ch {
		if _, err := io.WriteString(w, chunk); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.agent.HealthCheck(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           health.Status,
		"ollama_connected": health.OllamaConnected,
		"model":            health.Model,
		"timestamp":        time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.agent.ClearConversation(id) {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":         "Conversation cleared",
		"conversation_id": id,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	history, ok := s.agent.History(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation_id": id,
		"messages":        history,
	})
}

func (s *Server) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	if s.retriever == nil {
		writeError(w, http.StatusServiceUnavailable, "document ingestion is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read file: "+err.Error())
		return
	}

	text, err := ingest.ExtractText(content, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "extract text: "+err.Error())
		return
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("no text extracted from %q", header.Filename))
		return
	}

	docID, chunks, err := s.retriever.Ingest(r.Context(), text, header.Filename)
	if err != nil {
		s.logger.Error("document ingest failed", "source", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": docID,
		"chunks":      chunks,
	})
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func (s *Server) handleDocumentSearch(w http.ResponseWriter, r *http.Request) {
	if s.retriever == nil {
		writeError(w, http.StatusServiceUnavailable, "document search is not configured")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := s.retriever.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.logger.Error("document search failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []groto.RetrievalResult{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// decodeChatRequest reads and validates the shared /chat body.
func (s *Server) decodeChatRequest(w http.ResponseWriter, r *http.Request) (chatRequest, bool) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return req, false
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"detail": msg})
}
