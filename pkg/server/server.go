package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/config"
)

// Routes holds the handlers mounted under the base URL
type Routes struct {
	BaseURL     string
	Executables http.Handler
	Health      http.Handler
	Auth        func(http.Handler) http.Handler
}

// NewRouter mounts the routes. Only the executables route is authenticated.
func NewRouter(routes Routes) *http.ServeMux {
	baseURL := config.NormalizeBaseURL(routes.BaseURL)
	auth := routes.Auth
	if auth == nil {
		auth = func(h http.Handler) http.Handler { return h }
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+baseURL+config.ExecutablesRoute, auth(routes.Executables))
	if routes.Health != nil {
		mux.Handle("GET "+baseURL+config.HealthRoute, routes.Health)
	}
	return mux
}

// Server wraps http.Server with context-driven shutdown
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	log             hclog.Logger
}

// NewServer creates a server for handler
func NewServer(addr string, handler http.Handler, readHeaderTimeout, shutdownTimeout time.Duration, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
		},
		shutdownTimeout: shutdownTimeout,
		log:             logger,
	}
}

// Listen opens the listening socket
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("cannot listen on %s: %w", s.httpServer.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
