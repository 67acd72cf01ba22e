// Package api exposes the ingestion and question answering pipelines
// over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/logger"
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address (default ":8000").
	Addr string

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration
}

// Server wires handlers and middleware into an http.Server.
type Server struct {
	cfg    Config
	engine *gin.Engine
	srv    *http.Server
	log    *logger.Logger
}

// NewServer builds the router around the two driving ports.
func NewServer(cfg Config, ingestor driving.Ingestor, answerer driving.Answerer, log *logger.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(RequestID(), RequestLog(log), Recovery(log), CORS())

	upload := NewUploadHandler(ingestor, log)
	ask := NewAskHandler(answerer, log)
	health := NewHealthHandler()

	engine.POST("/upload_pdfs/", upload.Upload)
	engine.POST("/ask/", ask.Ask)
	engine.GET("/health", health.Health)

	return &Server{
		cfg:    cfg,
		engine: engine,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}
