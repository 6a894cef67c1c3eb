package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/identity"
)

const tripNotFound = "Trip not found"

// ListTrips handles GET /api/trips.
// Returns every trip of the caller, newest first. There is no pagination.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.List(r.Context(), owner)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), owner, id)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CreateTrip handles POST /api/trips.
// Responds 201 with the stored trip, or 400 with field-keyed errors.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), owner, patch)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTrip handles PUT /api/trips/{id}.
// The body is a partial trip; only the keys it contains are changed.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}

	updated, err := s.trips.Update(r.Context(), owner, id, patch)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), owner, id); err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Trip deleted successfully"})
}

// --- request helpers --------------------------------------------------------

// requireOwner returns the caller identity resolved by the auth middleware.
// It writes a 401 and returns false when none was resolved.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := identity.Owner(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return "", false
	}
	return owner, true
}

// tripID binds the {id} path parameter. A malformed id cannot name an
// existing trip, so it is reported as 404 rather than 400.
func tripID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, tripNotFound)
		return openapi_types.UUID{}, false
	}
	return id, true
}

// readPatch decodes the request body, writing 400 for a body that is not a
// JSON object and 413 when the body size limit was hit. Mistyped fields are
// left in the patch for the service to report.
func readPatch(w http.ResponseWriter, r *http.Request) (domain.TripPatch, bool) {
	patch, err := decodeTripPatch(r)
	if err == nil {
		return patch, true
	}

	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
	} else {
		writeError(w, http.StatusBadRequest, codeBadRequest, errBadBody.Error())
	}
	return domain.TripPatch{}, false
}
