package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/trialviz/axisgoat/internal/resolve"
	"github.com/trialviz/axisgoat/internal/store"
)

type Server struct {
	store     store.Store
	resolver  *resolve.Resolver
	port      int
	workers   int
	log       *slog.Logger
	router    *http.ServeMux
	startTime time.Time
}

func New(s store.Store, port, workers int, log *slog.Logger) *Server {
	srv := &Server{
		store:     s,
		resolver:  resolve.New(s, log),
		port:      port,
		workers:   workers,
		log:       log,
		router:    http.NewServeMux(),
		startTime: time.Now(),
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /api/views", s.handleViews)
	s.router.HandleFunc("GET /api/studies", s.handleStudies)

	s.router.HandleFunc("GET /api/studies/{study}/defaults", s.handleStudyDefaults)
	s.router.HandleFunc("GET /api/studies/{study}/views/{view}/options", s.handleOptions)
	s.router.HandleFunc("GET /api/studies/{study}/views/{view}/default", s.handleDefault)
	s.router.HandleFunc("POST /api/studies/{study}/views/{view}/reconcile", s.handleReconcile)
	s.router.HandleFunc("POST /api/studies/{study}/views/{view}/setting", s.handleSetting)
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.logRequests(s.router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down server")
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
