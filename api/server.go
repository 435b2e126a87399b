package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"employee-stats/services"
	"employee-stats/utils"
)

// maxBodyBytes bounds a pasted leaderboard.
const maxBodyBytes = 8 << 20

// Counter reports how many employees the record store holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Server exposes stats runs over HTTP. Authentication happens upstream;
// the session id comes from the route.
type Server struct {
	sessions *services.SessionService
	counter  Counter
	logger   *utils.Logger
}

// NewServer creates a Server. counter may be nil.
func NewServer(sessions *services.SessionService, counter Counter, logger *utils.Logger) *Server {
	return &Server{sessions: sessions, counter: counter, logger: logger}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/sessions/{sessionID}/stats", func(r chi.Router) {
		r.Post("/", s.handleRun)
		r.Get("/", s.handleLatest)
		r.Get("/export", s.handleExport)
	})
	return r
}
