package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/testutil"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

// newTestRepo returns a TripRepo backed by a transaction that is rolled back
// when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies the migrations.
func newTestRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	return repo.NewTripRepo(testutil.NewTx(t))
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	checkIn := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	trip := domain.NewTrip(ownerA)
	trip.Destination = "Paris"
	trip.Country = "France"
	trip.StartDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	trip.EndDate = time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC)
	trip.Budget = domain.Budget{Amount: 1000, Currency: "USD"}
	trip.Activities = []domain.Activity{
		{Name: "Louvre", Date: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), Location: "Rue de Rivoli"},
		{Name: "Eiffel Tower", Date: time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), Location: "Champ de Mars", Notes: "sunset"},
	}
	trip.Accommodation = &domain.Accommodation{Name: "Hotel du Nord", CheckIn: &checkIn}
	return trip
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, ownerA, got.OwnerID)
	assert.Equal(t, "Paris", got.Destination)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, domain.StatusPlanned, got.Status)
	assert.Equal(t, input.Budget, got.Budget)
	require.Len(t, got.Activities, 2)
	assert.Equal(t, "Louvre", got.Activities[0].Name, "activity order must be preserved")
	assert.Equal(t, "sunset", got.Activities[1].Notes)
	require.NotNil(t, got.Accommodation)
	require.NotNil(t, got.Accommodation.CheckIn)
	assert.True(t, got.Accommodation.CheckIn.Equal(*input.Accommodation.CheckIn))
	assert.Nil(t, got.Transportation)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_NilActivitiesStoredAsEmpty(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripFixture()
	input.Activities = nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, got.Activities)
	assert.Empty(t, got.Activities)
}

func TestTripRepo_Create_EndBeforeStartRejectedByStore(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripFixture()
	input.EndDate = input.StartDate.AddDate(0, 0, -1)

	_, err := r.Create(ctx, input)

	assert.Error(t, err, "trips_dates_ordered constraint should reject the row")
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, ownerA, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Destination, got.Destination)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), ownerA, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetByID_OtherOwner(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = r.GetByID(ctx, ownerB, created.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List_ScopedAndNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := tripFixture()
	first.Destination = "First"
	second := tripFixture()
	second.Destination = "Second"
	foreign := tripFixture()
	foreign.OwnerID = ownerB
	foreign.Destination = "Foreign"

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	_, err = r.Create(ctx, second)
	require.NoError(t, err)
	_, err = r.Create(ctx, foreign)
	require.NoError(t, err)

	trips, err := r.List(ctx, ownerA)

	require.NoError(t, err)
	var names []string
	for _, tr := range trips {
		assert.Equal(t, ownerA, tr.OwnerID)
		names = append(names, tr.Destination)
	}
	assert.Contains(t, names, "First")
	assert.Contains(t, names, "Second")
	assert.NotContains(t, names, "Foreign")
	for i := 1; i < len(trips); i++ {
		assert.False(t, trips[i].CreatedAt.After(trips[i-1].CreatedAt), "list must be created_at DESC")
	}
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Status = domain.StatusCompleted
	created.Accommodation = nil
	created.Transportation = &domain.Transportation{Type: "train", BookingReference: "TGV-1"}

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Nil(t, updated.Accommodation)
	require.NotNil(t, updated.Transportation)
	assert.Equal(t, "TGV-1", updated.Transportation.BookingReference)
	assert.Equal(t, "Paris", updated.Destination)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestTripRepo_Update_OtherOwner(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.OwnerID = ownerB
	_, err = r.Update(ctx, created)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	err = r.Delete(ctx, ownerA, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, ownerA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	// Another owner cannot delete it, and a random id does not exist at all.
	assert.ErrorIs(t, r.Delete(ctx, ownerB, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, ownerA, uuid.New()), domain.ErrNotFound)
}
