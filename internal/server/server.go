// ABOUTME: Thin HTTP layer exposing the chat, RAG, and index-admin pipelines
// ABOUTME: JSON in, {success, message} envelope out; no business logic lives here
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/minwoo/ragserve/internal/log"
)

// Engine is the pipeline surface the HTTP layer needs.
type Engine interface {
	Chat(ctx context.Context, key, prompt string) (string, error)
	ChatRAG(ctx context.Context, prompt string) (string, error)
	IngestDirectory(ctx context.Context, dir string) (int, error)
	Reset(ctx context.Context) error
}

type chatRequest struct {
	Prompt    string `json:"prompt"`
	Timestamp string `json:"timestamp"`
}

type ingestRequest struct {
	DirectoryPath string `json:"directoryPath"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server serves the HTTP API.
type Server struct {
	engine Engine
	logger log.Logger
	http   *http.Server
}

// New creates a Server listening on addr once Start is called.
func New(engine Engine, logger log.Logger, addr string) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	s := &Server{engine: engine, logger: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /openai/chat", s.handleChat)
	mux.HandleFunc("POST /openai/chat-rag", s.handleChatRAG)
	mux.HandleFunc("POST /openai/rag/init", s.handleIngest)
	mux.HandleFunc("POST /openai/rag/reset", s.handleReset)
	return s.withLogging(mux)
}

// withLogging tags each request with an ID and logs its outcome.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "invalid JSON body"})
		return
	}
	if req.Prompt == "" || req.Timestamp == "" {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "prompt and timestamp are required"})
		return
	}

	reply, err := s.engine.Chat(r.Context(), req.Timestamp, req.Prompt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: reply})
}

func (s *Server) handleChatRAG(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "invalid JSON body"})
		return
	}
	if req.Prompt == "" || req.Timestamp == "" {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "prompt and timestamp are required"})
		return
	}

	reply, err := s.engine.ChatRAG(r.Context(), req.Prompt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: reply})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "invalid JSON body"})
		return
	}
	if req.DirectoryPath == "" {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "directoryPath is required"})
		return
	}

	entries, err := s.engine.IngestDirectory(r.Context(), req.DirectoryPath)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: fmt.Sprintf("indexed %d entries", entries)})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reset(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "index reset"})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.logger.Error("pipeline failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, response{Success: false, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
