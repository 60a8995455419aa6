package server

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"sumpad/internal/database"
	"sumpad/internal/extract"
	"sumpad/internal/summarizer"
)

const (
	readHeaderTimeout = 10 * time.Second

	// Summarization dominates request time; leave headroom over the
	// provider timeout so slow responses are not cut off mid-write.
	writeTimeout = 2 * time.Minute
)

//go:embed static/index.html
var staticFiles embed.FS

// Server exposes the summarizer page and its JSON API.
type Server struct {
	httpServer *http.Server
	summarizer summarizer.Summarizer
	extractor  *extract.Extractor
	db         *database.Database
	log        *slog.Logger
}

func New(
	addr string,
	s summarizer.Summarizer,
	extractor *extract.Extractor,
	db *database.Database,
	log *slog.Logger,
) *Server {
	srv := &Server{
		summarizer: s,
		extractor:  extractor,
		db:         db,
		log:        log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/api/summarize", srv.handleSummarize)
	mux.HandleFunc("/api/history", srv.handleHistory)
	mux.HandleFunc("/health", srv.handleHealth)

	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	return srv
}

// Handler returns the route table so tests can drive it without a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
