// Package server exposes analysis and revision over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/docvet/docvet/internal/config"
	"github.com/docvet/docvet/internal/extract"
	"github.com/docvet/docvet/internal/fetch"
	"github.com/docvet/docvet/internal/hook"
	"github.com/docvet/docvet/internal/report"
	"github.com/docvet/docvet/internal/revise"
)

// Server answers POST /analyze and POST /revise.
type Server struct {
	cfg      *config.Config
	fetcher  *fetch.Fetcher
	rewriter hook.Rewriter
	logger   *log.Logger
}

// New builds a Server. rewriter may be nil.
func New(cfg *config.Config, rewriter hook.Rewriter, logger *log.Logger) *Server {
	return &Server{
		cfg:      cfg,
		fetcher:  fetch.New(cfg.FetchTimeout),
		rewriter: rewriter,
		logger:   logger,
	}
}

// Handler returns the routed mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /revise", s.handleRevise)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe runs until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// request is the body for both endpoints. Exactly one of URL and
// Content must be set; Source names Content when no URL is given.
type request struct {
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
	Source  string `json:"source,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	rep, err := report.Build(doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, rep)
}

func (s *Server) handleRevise(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	rep, err := report.Build(doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	rev := revise.New(revise.WithRewriter(s.rewriter))
	result, err := rev.Revise(r.Context(), doc, rep.Findings())
	if err != nil {
		s.fail(w, err)
		return
	}

	s.respond(w, struct {
		revise.Summary
		Revised string `json:"revised"`
	}{
		Summary: revise.Summarize(doc.Source, result),
		Revised: extract.RenderMarkdown(result.Document),
	})
}

// document resolves the request body into an extracted document.
func (s *Server) document(r *http.Request) (*extract.Document, error) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, badRequest("invalid JSON body")
	}

	var content []byte
	source := req.Source
	switch {
	case req.URL != "" && req.Content != "":
		return nil, badRequest("url and content are mutually exclusive")
	case req.URL != "":
		body, err := s.fetcher.Get(r.Context(), req.URL)
		if err != nil {
			return nil, badRequest(err.Error())
		}
		content = body
		source = req.URL
	case req.Content != "":
		content = []byte(req.Content)
		if source == "" {
			source = "inline"
		}
	default:
		return nil, badRequest("url or content is required")
	}

	doc, err := extract.ForSource(source, content).Extract(source, content)
	if err != nil {
		return nil, badRequest(err.Error())
	}
	return doc, nil
}

type httpError struct {
	status int
	msg    string
}

func (e httpError) Error() string { return e.msg }

func badRequest(msg string) error {
	return httpError{status: http.StatusBadRequest, msg: msg}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var he httpError
	if errors.As(err, &he) {
		status = he.status
	}
	s.logger.Warn("request failed", "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func (s *Server) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}
