// Package app wires the HTTP server from configuration.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mandalnilabja/llmshim/internal/config"
)

// shutdownTimeout bounds how long in-flight streams may take to finish.
const shutdownTimeout = 30 * time.Second

// Server wraps the HTTP server with its configuration
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *slog.Logger
}

// NewServer creates a new configured HTTP server instance
func NewServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: handler,
		// Streams can run for minutes
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       300 * time.Second,
		WriteTimeout:      300 * time.Second,
	}

	return &Server{
		httpServer: srv,
		config:     cfg,
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.config.ServerPort)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
