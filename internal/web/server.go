package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/internal/engine"
	"github.com/buemura/willie/internal/web/jobs"
)

// Server is the HTTP server exposing scan and scrub jobs.
type Server struct {
	router        chi.Router
	addr          string
	registry      *analyzer.Registry
	manager       *jobs.Manager
	log           *zap.SugaredLogger
	root          string
	maxIterations int
	maxLineLength int
	jobTimeout    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and job logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) { s.log = log }
}

// WithRoot confines job paths to root.
func WithRoot(root string) Option {
	return func(s *Server) { s.root = root }
}

// WithMaxIterations sets the scrub budget used when a request omits one.
func WithMaxIterations(n int) Option {
	return func(s *Server) { s.maxIterations = n }
}

// WithMaxLineLength sets the limit reported by the rules endpoint.
func WithMaxLineLength(n int) Option {
	return func(s *Server) { s.maxLineLength = n }
}

// WithJobTimeout bounds each job.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Server) { s.jobTimeout = d }
}

// NewServer builds a new Server with middleware and routes configured.
func NewServer(addr string, eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		addr:          addr,
		registry:      eng.Registry(),
		log:           zap.NewNop().Sugar(),
		maxIterations: 10,
		maxLineLength: analyzer.DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.manager = jobs.NewManager(eng, jobs.WithLogger(s.log), jobs.WithTimeout(s.jobTimeout))

	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes()

	return s
}

// Start listens on the configured address until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Infow("listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Manager exposes the job manager for testing.
func (s *Server) Manager() *jobs.Manager {
	return s.manager
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Infow("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
