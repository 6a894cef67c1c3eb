package client

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripAPI is the part of the REST surface TripCache uses. *Client satisfies it.
type TripAPI interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	CreateTrip(ctx context.Context, in any) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, patch any) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error
}

// TripCache holds the last-fetched trips of one caller together with a
// loading flag and the message of the last failed call.
//
// It is not authoritative. Mutations patch the cached list with what the
// server returned instead of refetching, and a failed refresh leaves the
// stale list in place. Nothing is retried.
type TripCache struct {
	api TripAPI

	mu     sync.RWMutex
	trips  []domain.Trip
	calls  int // API calls in flight
	errMsg string
}

// NewTripCache returns a cache that has already attempted its first refresh.
// A failed first refresh is reported through Err, not returned.
func NewTripCache(ctx context.Context, api TripAPI) *TripCache {
	c := &TripCache{api: api, trips: []domain.Trip{}}
	_ = c.Refresh(ctx)
	return c
}

// Trips returns a copy of the cached trips in server order.
func (c *TripCache) Trips() []domain.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.trips)
}

// Loading reports whether any API call made through the cache (a refresh,
// create, update or delete) is in flight.
func (c *TripCache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls > 0
}

// begin marks a call in flight. The returned func must be called with mu
// held once the call has returned.
func (c *TripCache) begin() (end func()) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return func() { c.calls-- }
}

// Err returns the message of the last failed call, or "" after a success.
func (c *TripCache) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// Refresh replaces the cached list with the server's.
func (c *TripCache) Refresh(ctx context.Context) error {
	end := c.begin()
	trips, err := c.api.ListTrips(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	end()
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.trips = trips
	c.errMsg = ""
	return nil
}

// Create creates a trip and appends the stored record.
func (c *TripCache) Create(ctx context.Context, in any) (domain.Trip, error) {
	end := c.begin()
	created, err := c.api.CreateTrip(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	end()
	if err != nil {
		c.errMsg = err.Error()
		return domain.Trip{}, err
	}
	c.trips = append(c.trips, created)
	c.errMsg = ""
	return created, nil
}

// Update sends a partial update and replaces the cached trip with the
// merged record the server returned.
func (c *TripCache) Update(ctx context.Context, id uuid.UUID, patch any) (domain.Trip, error) {
	end := c.begin()
	updated, err := c.api.UpdateTrip(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	end()
	if err != nil {
		c.errMsg = err.Error()
		return domain.Trip{}, err
	}
	if i := c.indexOf(id); i >= 0 {
		c.trips[i] = updated
	}
	c.errMsg = ""
	return updated, nil
}

// Delete deletes a trip and drops it from the cache.
func (c *TripCache) Delete(ctx context.Context, id uuid.UUID) error {
	end := c.begin()
	err := c.api.DeleteTrip(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	end()
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	if i := c.indexOf(id); i >= 0 {
		c.trips = slices.Delete(c.trips, i, i+1)
	}
	c.errMsg = ""
	return nil
}

// indexOf must be called with mu held.
func (c *TripCache) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(c.trips, func(t domain.Trip) bool { return t.ID == id })
}
