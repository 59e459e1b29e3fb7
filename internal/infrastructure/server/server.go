package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gdugdh24/cofound-backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	shutdownTimeout = 10 * time.Second
	// drainGrace is how long in-flight requests may finish before request
	// contexts are cancelled, which ends open event streams.
	drainGrace = 2 * time.Second
)

// Server represents HTTP server
type Server struct {
	httpServer *http.Server
	cancelBase context.CancelFunc
	log        zerolog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.ServerConfig, router *gin.Engine, log zerolog.Logger) *Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			MaxHeaderBytes:    1 << 20, // 1 MB
			BaseContext: func(net.Listener) context.Context {
				return baseCtx
			},
		},
		cancelBase: cancel,
		log:        log,
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting http server")

	return s.serve(s.httpServer.ListenAndServe())
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("starting http server")

	return s.serve(s.httpServer.Serve(ln))
}

func (s *Server) serve(err error) error {
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	defer s.cancelBase()

	done := make(chan error, 1)
	go func() {
		done <- s.httpServer.Shutdown(shutdownCtx)
	}()

	grace := time.NewTimer(drainGrace)
	defer grace.Stop()

	var err error
	select {
	case err = <-done:
	case <-grace.C:
		s.log.Info().Msg("cancelling open streams")
		s.cancelBase()
		err = <-done
	}
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info().Msg("http server stopped")
	return nil
}
