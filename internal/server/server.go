// Package server is the reference implementation of the workout API the
// client consumes: template+history listing, recent history per template,
// workout creation, template creation, and template deletion. Deployments
// may substitute any backend that speaks the same endpoints.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/setlog/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  storage.Store
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store storage.Store, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(BearerAuth)

	s.router.Get("/templates", s.handleWorkoutData)
	s.router.Get("/history", s.handleRecentHistory)
	s.router.Post("/workouts", s.handleCreateWorkout)
	// Older client builds posted workouts to the root path.
	s.router.Post("/", s.handleCreateWorkout)
	s.router.Post("/templates", s.handleCreateTemplate)
	s.router.Delete("/", s.handleDeleteTemplate)
}
