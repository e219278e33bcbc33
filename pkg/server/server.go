package server

import (
	"context"
	"net/http"
	"time"

	"github.com/arthur-debert/prismatic/pkg/core"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	// DefaultAddr is used when the configuration names no address
	DefaultAddr = "127.0.0.1:8089"

	// DefaultMetricsPath is used when the configuration names no path
	DefaultMetricsPath = "/metrics"

	shutdownTimeout = 5 * time.Second
)

// Server serves one engine
type Server struct {
	engine  *core.Engine
	metrics *metrics.Metrics
	router  chi.Router
	addr    string
	logger  zerolog.Logger
}

// New builds the router. Metrics are served when the engine carries them.
func New(engine *core.Engine) *Server {
	s := &Server{
		engine:  engine,
		metrics: engine.Metrics,
		addr:    engine.Config.Server.Addr,
		logger:  logging.GetLogger("server"),
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(Tracing(DefaultTracerName))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog/{category}", s.handleCatalog)
		r.Get("/deps/{category}/{handle}", s.handleDeps)
		r.Get("/resolve", s.handleResolve)
		r.Post("/highlight", s.handleHighlight)
	})

	if s.metrics != nil {
		path := s.engine.Config.Server.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Method(http.MethodGet, path, s.metrics.Handler())
	}
	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the address Run listens on
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("requestID", middleware.GetReqID(r.Context())).
			Msg("Request served")
	})
}
