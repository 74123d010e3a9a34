package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vbonduro/spotshare/internal/auth"
	"github.com/vbonduro/spotshare/internal/images"
	"github.com/vbonduro/spotshare/internal/service"
)

type Server struct {
	service  *service.SpotService
	images   *images.Manager
	sessions *auth.Sessions
	mux      *http.ServeMux
	logger   *slog.Logger

	mu       sync.Mutex
	httpSrv  *http.Server
	shutdown bool
}

func NewServer(svc *service.SpotService, img *images.Manager, sessions *auth.Sessions, logger *slog.Logger) *Server {
	s := &Server{
		service:  svc,
		images:   img,
		sessions: sessions,
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/spots", s.handleListSpots)
	s.mux.HandleFunc("POST /api/spots", s.handleCreateSpot)
	s.mux.HandleFunc("GET /api/spots/lucky", s.handleLuckyDraw)
	s.mux.HandleFunc("GET /api/spots/{id}", s.handleGetSpot)
	s.mux.Handle("PUT /api/spots/{id}", s.requireAdmin(http.HandlerFunc(s.handleUpdateSpot)))
	s.mux.Handle("DELETE /api/spots/{id}", s.requireAdmin(http.HandlerFunc(s.handleDeleteSpot)))

	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/categories", s.handleListCategories)
	s.mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	s.mux.HandleFunc("GET /api/areas", s.handleListAreas)
	s.mux.HandleFunc("POST /api/areas", s.handleAddArea)
	s.mux.HandleFunc("GET /api/districts", s.handleDistricts)

	s.mux.HandleFunc("GET /api/images/{filename}", s.handleGetImage)

	s.mux.HandleFunc("POST /api/admin/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/admin/logout", s.handleLogout)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe blocks until the server stops. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return http.ErrServerClosed
	}
	s.httpSrv = srv
	s.mu.Unlock()
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdown = true
	srv := s.httpSrv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.logger.Info("shutting down server")
	return srv.Shutdown(ctx)
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
