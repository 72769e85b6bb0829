package server

import (
	"log/slog"
	"net/http"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/coach"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	coach  *coach.Coach
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, c *coach.Coach, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		coach:  c,
		log:    log,
		apiKey: apiKey,
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

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/workout", s.handleIngestWorkout)
		r.Post("/wellness", s.handleIngestWellness)
	})

	// Profile
	s.router.Get("/api/v1/profile", s.handleGetProfile)
	s.router.Put("/api/v1/profile", s.handlePutProfile)

	// Engine outputs
	s.router.Get("/api/v1/fitness", s.handleFitness)
	s.router.Get("/api/v1/readiness", s.handleReadiness)
	s.router.Get("/api/v1/recommendation", s.handleRecommendation)
	s.router.Get("/api/v1/zones", s.handleZones)
	s.router.Get("/api/v1/prediction", s.handlePrediction)

	// Plan tracking
	s.router.Post("/api/v1/plan", s.handlePlanWorkout)
	s.router.Post("/api/v1/plan/{id}/result", s.handleLogResult)
	s.router.Get("/api/v1/compliance", s.handleCompliance)

	// Adaptations
	s.router.Get("/api/v1/adaptations", s.handleAdaptations)
	s.router.Post("/api/v1/adaptations/generate", s.handleGenerateAdaptations)
	s.router.Post("/api/v1/adaptations/{id}/apply", s.handleApplyAdaptation)
}
