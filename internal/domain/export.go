package domain

import "time"

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated for every activity on that trip. Trips with no activities yield
// one row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID      string
	Destination string
	Country     string
	StartDate   time.Time
	EndDate     time.Time
	Status      TripStatus
	Budget      Budget

	// Activity fields. Zero values when the trip has no activities.
	ActivityName     string
	ActivityDate     *time.Time
	ActivityLocation string
	ActivityNotes    string
}
