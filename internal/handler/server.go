// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (health.go, trip.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, ownerID string, in domain.TripPatch) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, ownerID string) ([]domain.Trip, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, in domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// ExportServicer defines the export operation GET /api/export depends on.
type ExportServicer interface {
	Export(ctx context.Context, ownerID string) ([]domain.ExportRow, error)
}

// Pinger reports whether the backing store is reachable.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies of every HTTP handler.
type Server struct {
	trips  TripServicer
	export ExportServicer
	db     Pinger
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// db may be nil, in which case /healthz only reports liveness.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, export ExportServicer, db Pinger, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, export: export, db: db, log: log}
}

// Routes builds the router for the whole API.
// apiMiddleware wraps only the /api subtree; the owner-resolving middleware
// belongs there so /healthz and /openapi.yaml stay public.
func (s *Server) Routes(apiMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiMiddleware...)

		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/{id}", s.GetTrip)
		r.Put("/trips/{id}", s.UpdateTrip)
		r.Delete("/trips/{id}", s.DeleteTrip)

		r.Get("/export", s.GetExport)
	})

	return r
}
