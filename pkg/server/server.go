package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/labelselect/internal/config"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"github.com/vango-dev/labelselect/pkg/middleware"
)

// Server serves a page file over HTTP and WebSocket.
type Server struct {
	config   *ServerConfig
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger

	mu       sync.RWMutex
	page     *config.Config
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a Server for page. A nil cfg uses FromPage(page).
func New(page *config.Config, cfg *ServerConfig) *Server {
	if cfg == nil {
		cfg = FromPage(page)
	}
	cfg = cfg.withDefaults()

	s := &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger:   slog.Default().With("component", "server"),
		page:     page,
		sessions: make(map[string]*Session),
	}
	if cfg.Metrics {
		// Creates the collectors so /metrics lists them before the first page.
		middleware.Prometheus()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	if s.config.Metrics {
		r.Handle(s.config.MetricsPath, promhttp.Handler())
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// PageConfig returns the current page file.
func (s *Server) PageConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// registryOptions are the options every page registry gets.
func (s *Server) registryOptions(logger *slog.Logger) []labelselect.RegistryOption {
	opts := []labelselect.RegistryOption{
		labelselect.WithLogger(logger.With("component", "labelselect")),
	}
	var mws []labelselect.Middleware
	if s.config.Tracing {
		mws = append(mws, middleware.OpenTelemetry())
	}
	if s.config.Metrics {
		mws = append(mws, middleware.Prometheus())
		opts = append(opts, labelselect.WithEmitHook(middleware.EmitHook()))
	}
	return append(opts, labelselect.WithMiddleware(mws...))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := NewPage(s.PageConfig(), s.registryOptions(s.logger)...)
	if err != nil {
		s.logger.Error("page build failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	html, err := page.Document(false, false)
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// HandleWebSocket upgrades the request and serves a fresh page on it.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		middleware.RecordWebSocketError("upgrade")
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	page, err := NewPage(s.PageConfig(), s.registryOptions(s.logger)...)
	if err != nil {
		s.logger.Error("page build failed", "error", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "page build failed"))
		conn.Close()
		return
	}

	sess := newSession(s, conn, page)
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	if s.config.Metrics {
		middleware.RecordPageOpen()
	}
	sess.logger.Info("session started", "remote", r.RemoteAddr)

	go sess.run()
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reload swaps the page file. New connections get the new page at once;
// live sessions rebuild their page on their own goroutine.
func (s *Server) Reload(page *config.Config) {
	s.mu.Lock()
	s.page = page
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.queueReload(page)
	}
	s.logger.Info("page config reloaded", "sessions", len(sessions))
}

// Run listens on the configured address until ctx is done or the process
// receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()
	for _, sess := range sessions {
		sess.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger sets the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}
