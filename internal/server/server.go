// Package server exposes a timetable session over a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/planner"
)

const shutdownTimeout = 5 * time.Second

// Server owns a session and serializes all access to it.
type Server struct {
	mu      sync.Mutex
	session *planner.Session
	engine  *gin.Engine
}

// New builds the router for session.
func New(session *planner.Session) *Server {
	s := &Server{session: session}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	s.registerRoutes(r)
	s.engine = r

	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
