// Package repo contains all database access logic for the Trip Planner API.
// Trips are stored one row per document; the nested sub-documents (budget,
// activities, accommodation, transportation) live in JSONB columns.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Every read and write is scoped by owner: a trip that exists but belongs to
// another owner is indistinguishable from one that does not exist.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by id and owner.
	// Returns domain.ErrNotFound if no such trip exists for that owner.
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)

	// List returns all trips of an owner ordered by created_at descending.
	List(ctx context.Context, ownerID string) ([]domain.Trip, error)

	// Update overwrites every mutable field of the trip identified by
	// trip.ID and trip.OwnerID and returns the stored record.
	// Returns domain.ErrNotFound if no such trip exists for that owner.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by id and owner.
	// Returns domain.ErrNotFound if no such trip exists for that owner.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, destination, country, start_date, end_date,
		description, image, status, budget, activities, accommodation,
		transportation, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (owner_id, destination, country, start_date, end_date,
		                   description, image, status, budget, activities,
		                   accommodation, transportation)
		VALUES (@owner_id, @destination, @country, @start_date, @end_date,
		        @description, @image, @status, @budget, @activities,
		        @accommodation, @transportation)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key within one owner's trips.
func (r *pgTripRepo) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns an owner's trips, most recently created first.
func (r *pgTripRepo) List(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// The whole document is written; merging happens in the service layer.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET destination    = @destination,
		    country        = @country,
		    start_date     = @start_date,
		    end_date       = @end_date,
		    description    = @description,
		    image          = @image,
		    status         = @status,
		    budget         = @budget,
		    activities     = @activities,
		    accommodation  = @accommodation,
		    transportation = @transportation,
		    updated_at     = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key within one owner's trips.
func (r *pgTripRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs maps the writable columns of a trip to named arguments.
// pgx encodes the struct, slice and pointer values as JSON for the JSONB
// columns; a nil sub-document pointer becomes SQL NULL.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	activities := trip.Activities
	if activities == nil {
		activities = []domain.Activity{}
	}
	return pgx.NamedArgs{
		"owner_id":       trip.OwnerID,
		"destination":    trip.Destination,
		"country":        trip.Country,
		"start_date":     trip.StartDate,
		"end_date":       trip.EndDate,
		"description":    trip.Description,
		"image":          trip.Image,
		"status":         string(trip.Status),
		"budget":         trip.Budget,
		"activities":     activities,
		"accommodation":  trip.Accommodation,
		"transportation": trip.Transportation,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// JSONB columns are decoded straight into the domain sub-document types.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		status string
	)

	err := s.Scan(
		&id, &t.OwnerID, &t.Destination, &t.Country, &t.StartDate, &t.EndDate,
		&t.Description, &t.Image, &status, &t.Budget, &t.Activities,
		&t.Accommodation, &t.Transportation, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Status = domain.TripStatus(status)
	t.StartDate = t.StartDate.UTC()
	t.EndDate = t.EndDate.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.Activities == nil {
		t.Activities = []domain.Activity{}
	}

	return t, nil
}
