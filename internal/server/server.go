// Package server exposes the engine over a thin JSON HTTP surface. No
// authentication or session handling lives here; that belongs to the
// surrounding application.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/intakeworks/docvalid/internal/config"
	"github.com/intakeworks/docvalid/internal/docproc"
)

// Server wraps the processor behind an HTTP router.
type Server struct {
	processor *docproc.Processor
	cfg       config.ServerConfig
	limiter   *rate.Limiter
}

// New creates a server around a processor.
func New(processor *docproc.Processor, cfg config.ServerConfig) *Server {
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 25
	}
	return &Server{
		processor: processor,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), perSecond*2),
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/documents/analyze", s.handleAnalyzeDocument)
		r.Post("/cases/analyze", s.handleAnalyzeCase)
		r.Get("/metrics/report", s.handleMetricsReport)
	})
	return r
}

// rateLimit sheds load once the shared token bucket empties.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}
