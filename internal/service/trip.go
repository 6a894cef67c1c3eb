// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
//
// Every operation takes the owner id explicitly. Authentication resolves it
// upstream; the service never looks at request context for identity.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo      repo.TripRepo
	validator *tripValidator
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, validator: newTripValidator()}
}

// Create applies the payload to a fresh trip (status planned, no
// activities), validates the complete record and persists it.
// Keys the decoder rejected are reported with their decode message, next
// to every rule the rest of the record breaks.
// Returns a *domain.ValidationError (matching domain.ErrValidation) without
// touching the store when any rule fails.
func (s *TripService) Create(ctx context.Context, ownerID string, in domain.TripPatch) (domain.Trip, error) {
	trip := domain.NewTrip(ownerID).Apply(normalizePatch(in))

	verr := domain.NewValidationError()
	verr.Merge(in.Rejected)
	verr.Merge(s.validator.validate(trip, nil).Fields)
	if !in.Budget.Set {
		verr.Add("budget", "budget is required")
	}
	if err := verr.OrNil(); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns one of the owner's trips.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (s *TripService) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all of the owner's trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update shallow-merges the supplied fields into the stored trip and
// persists the result. Only supplied fields are validated, so a stored
// record is never blocked by rules on fields the caller did not touch.
// The date order is checked on the merged record whenever either date is
// supplied.
//
// Returns domain.ErrNotFound if the trip does not exist for this owner and
// a *domain.ValidationError if a supplied field is invalid.
func (s *TripService) Update(ctx context.Context, ownerID string, id uuid.UUID, in domain.TripPatch) (domain.Trip, error) {
	current, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	merged := current.Apply(normalizePatch(in))

	verr := domain.NewValidationError()
	verr.Merge(in.Rejected)
	verr.Merge(s.validator.validate(merged, in.Fields()).Fields)
	if err := verr.OrNil(); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	result, err := s.repo.Update(ctx, merged)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete permanently removes one of the owner's trips.
// Returns domain.ErrNotFound if it does not exist for this owner.
func (s *TripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// normalizePatch trims surrounding whitespace from the required text fields
// so that "   " is treated as missing.
func normalizePatch(p domain.TripPatch) domain.TripPatch {
	if p.Destination.Set {
		p.Destination.Value = strings.TrimSpace(p.Destination.Value)
	}
	if p.Country.Set {
		p.Country.Value = strings.TrimSpace(p.Country.Value)
	}
	if p.Budget.Set {
		p.Budget.Value.Currency = strings.TrimSpace(p.Budget.Value.Currency)
	}
	return p
}
