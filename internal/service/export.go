package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ExportService flattens an owner's trips into an itinerary table.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per activity across all of the owner's trips,
// trips newest first and activities in their stored order.
// Trips with no activities contribute one row with empty activity fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, ownerID string) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:      t.ID.String(),
			Destination: t.Destination,
			Country:     t.Country,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			Status:      t.Status,
			Budget:      t.Budget,
		}
		if len(t.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range t.Activities {
			row := base
			date := a.Date
			row.ActivityName = a.Name
			row.ActivityDate = &date
			row.ActivityLocation = a.Location
			row.ActivityNotes = a.Notes
			rows = append(rows, row)
		}
	}
	return rows, nil
}
