// Package server assembles the todo API, the static fallback and the
// request filters into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/toumakido/todolist/internal/config"
	"github.com/toumakido/todolist/internal/handler"
	"github.com/toumakido/todolist/internal/middleware"
	"github.com/toumakido/todolist/internal/static"
)

// Server is the running HTTP service.
type Server struct {
	cfg    config.Config
	http   *http.Server
	logger *slog.Logger
}

// NewHandler wires store, router and filters into a single http.Handler.
func NewHandler(cfg config.Config, todos handler.TodoStore, logger *slog.Logger) http.Handler {
	api := handler.NewTodoHandler(todos,
		handler.WithMaxBodyBytes(cfg.MaxBodyBytes),
		handler.WithLogger(logger),
	)
	router := handler.NewRouter(api, static.NewResolver(cfg.PublicDir, static.ContentType))

	return middleware.Chain(router,
		middleware.RequestID,
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
		middleware.CORS,
	)
}

// New creates a Server for cfg backed by todos.
func New(cfg config.Config, todos handler.TodoStore, logger *slog.Logger) *Server {
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewHandler(cfg, todos, logger),
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// ListenAndServe binds the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests for up to the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("todo app running", slog.String("url", "http://"+displayAddr(ln.Addr())))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", slog.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func displayAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || !tcp.IP.IsUnspecified() {
		return addr.String()
	}
	return net.JoinHostPort("localhost", fmt.Sprint(tcp.Port))
}
