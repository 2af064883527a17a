package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/phishscan/internal/model"
)

const (
	// MsgURLRequired is returned when the request carries no URL.
	MsgURLRequired = "URL is required"

	// MsgAnalysisFailed is returned for internal failures. The cause is
	// only logged.
	MsgAnalysisFailed = "An error occurred during analysis."

	// maxRequestBody bounds the JSON body of an analyze request.
	maxRequestBody = 64 * 1024

	readHeaderTimeout = 10 * time.Second
)

// Analyzer scores one URL. *pipeline.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error)
}

// Server is the HTTP transport for the analyzer.
type Server struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// New creates a Server. A nil logger falls back to slog.Default().
func New(analyzer Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{analyzer: analyzer, logger: logger}
}

// analyzeRequest is the body of POST /analyze.
type analyzeRequest struct {
	URL string `json:"url"`
}

// errorResponse is the body of every non-200 response.
type errorResponse struct {
	Error string `json:"error"`
}

// Routes returns a chi.Router serving the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(allowAllOrigins)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/analyze", s.handleAnalyze)
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Debug("undecodable analyze request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: MsgURLRequired})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.URL)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result.Response())
	case model.IsInvalidInput(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: MsgURLRequired})
	default:
		s.logger.Error("analyze request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"url", req.URL,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: MsgAnalysisFailed})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}
